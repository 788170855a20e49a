package service

import (
	"context"
	"errors"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
)

type BookmarkService struct {
	Store store.Store
}

// List returns the user's bookmarked content ids, empty when none saved yet.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]string, error) {
	b, err := s.Store.Bookmarks().GetBookmarksByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	return b.ContentIDs, nil
}

// Add appends content ids to the user's list, skipping ones already present,
// and returns the stored list.
func (s *BookmarkService) Add(ctx context.Context, userID string, contentIDs []string) ([]string, error) {
	var stored []string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Bookmarks().GetBookmarksByUserID(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		seen := make(map[string]bool, len(current.ContentIDs))
		merged := append([]string{}, current.ContentIDs...)
		for _, id := range current.ContentIDs {
			seen[id] = true
		}
		for _, id := range contentIDs {
			if !seen[id] {
				seen[id] = true
				merged = append(merged, id)
			}
		}

		if err := tx.Bookmarks().SaveBookmarks(ctx, domain.Bookmarks{UserID: userID, ContentIDs: merged}); err != nil {
			return err
		}
		stored = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}
