package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

// DeviceBrowserExtension tags break events reported by the extension.
const DeviceBrowserExtension = "browser_extension"

type ImprovementService struct {
	Store store.Store
}

// RecordBreak stores one break event for the user and returns the content id
// minted for it. The per-user anchor row is created on first event.
func (s *ImprovementService) RecordBreak(ctx context.Context, userID string, completed bool, rating int) (string, error) {
	contentID := uuid.NewString()

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		anchor, err := tx.Improvements().GetUserImprovementByUserID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			anchor = domain.UserImprovement{ID: idx.New().String(), UserID: userID}
			if err := tx.Improvements().CreateUserImprovement(ctx, anchor); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Improvements().CreateImprovement(ctx, domain.Improvement{
			ID:                idx.New().String(),
			UserImprovementID: anchor.ID,
			ContentIDs:        []string{contentID},
			Completed:         completed,
			Device:            DeviceBrowserExtension,
			Rating:            rating,
			CreatedAt:         time.Now().UTC(),
		})
	})
	if err != nil {
		return "", err
	}
	return contentID, nil
}

// TotalBreaks counts the break events recorded for one user. A user who has
// never taken a break reports zero.
func (s *ImprovementService) TotalBreaks(ctx context.Context, userID string) (int, error) {
	anchor, err := s.Store.Improvements().GetUserImprovementByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return s.Store.Improvements().CountImprovements(ctx, anchor.ID)
}
