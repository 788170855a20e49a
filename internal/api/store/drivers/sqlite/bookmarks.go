package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type bookmarksRepo struct {
	q dbtx
}

func (r *bookmarksRepo) GetBookmarksByUserID(ctx context.Context, userID string) (domain.Bookmarks, error) {
	var b domain.Bookmarks
	var ids string
	err := r.q.QueryRowContext(ctx,
		`SELECT user_id, content_ids FROM bookmarks WHERE user_id = ?`, userID).
		Scan(&b.UserID, &ids)
	if err != nil {
		return domain.Bookmarks{}, mapNotFound(err)
	}
	b.ContentIDs = decodeStrings(ids)
	return b, nil
}

func (r *bookmarksRepo) SaveBookmarks(ctx context.Context, b domain.Bookmarks) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO bookmarks (user_id, content_ids) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET content_ids = excluded.content_ids`,
		b.UserID, encodeStrings(b.ContentIDs))
	return err
}
