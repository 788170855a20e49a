package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type screenTimeRepo struct {
	q dbtx
}

func (r *screenTimeRepo) GetScreenTime(ctx context.Context, userID, date string) (domain.ScreenTime, error) {
	var st domain.ScreenTime
	var buckets string
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, date, screen_time FROM user_screen_time WHERE user_id = ? AND date = ?`,
		userID, date).
		Scan(&st.ID, &st.UserID, &st.Date, &buckets)
	if err != nil {
		return domain.ScreenTime{}, mapNotFound(err)
	}
	st.Buckets = decodeBuckets(buckets)
	return st, nil
}

func (r *screenTimeRepo) CreateScreenTime(ctx context.Context, st domain.ScreenTime) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_screen_time (id, user_id, date, screen_time) VALUES (?, ?, ?, ?)`,
		st.ID, st.UserID, st.Date, encodeBuckets(st.Buckets))
	return mapConstraint(err)
}

func (r *screenTimeRepo) UpdateScreenTimeBuckets(ctx context.Context, id string, buckets map[string]int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE user_screen_time SET screen_time = ? WHERE id = ?`,
		encodeBuckets(buckets), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
