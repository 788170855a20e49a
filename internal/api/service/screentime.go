package service

import (
	"context"
	"errors"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

type ScreenTimeService struct {
	Store store.Store
}

// Today returns the user's screen time row for the current UTC date,
// creating an empty one on first access.
func (s *ScreenTimeService) Today(ctx context.Context, userID string) (domain.ScreenTime, error) {
	date := time.Now().UTC().Format("2006-01-02")
	return s.getOrCreate(ctx, userID, date)
}

// Record upserts the bucket map for one (user, date) pair and returns the
// stored row.
func (s *ScreenTimeService) Record(ctx context.Context, userID, date string, buckets map[string]int) (domain.ScreenTime, error) {
	var out domain.ScreenTime
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		st, err := tx.ScreenTime().GetScreenTime(ctx, userID, date)
		if errors.Is(err, store.ErrNotFound) {
			st = domain.ScreenTime{
				ID:      idx.New().String(),
				UserID:  userID,
				Date:    date,
				Buckets: buckets,
			}
			if err := tx.ScreenTime().CreateScreenTime(ctx, st); err != nil {
				return err
			}
			out = st
			return nil
		}
		if err != nil {
			return err
		}

		st.Buckets = buckets
		if err := tx.ScreenTime().UpdateScreenTimeBuckets(ctx, st.ID, buckets); err != nil {
			return err
		}
		out = st
		return nil
	})
	if err != nil {
		return domain.ScreenTime{}, err
	}
	return out, nil
}

func (s *ScreenTimeService) getOrCreate(ctx context.Context, userID, date string) (domain.ScreenTime, error) {
	var out domain.ScreenTime
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		st, err := tx.ScreenTime().GetScreenTime(ctx, userID, date)
		if err == nil {
			out = st
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		out = domain.ScreenTime{
			ID:      idx.New().String(),
			UserID:  userID,
			Date:    date,
			Buckets: map[string]int{},
		}
		return tx.ScreenTime().CreateScreenTime(ctx, out)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return s.Store.ScreenTime().GetScreenTime(ctx, userID, date)
	}
	if err != nil {
		return domain.ScreenTime{}, err
	}
	return out, nil
}
