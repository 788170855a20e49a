package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type improvementsRepo struct {
	q dbtx
}

func (r *improvementsRepo) GetUserImprovementByUserID(ctx context.Context, userID string) (domain.UserImprovement, error) {
	var ui domain.UserImprovement
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id FROM user_improvements WHERE user_id = ?`, userID).
		Scan(&ui.ID, &ui.UserID)
	if err != nil {
		return domain.UserImprovement{}, mapNotFound(err)
	}
	return ui, nil
}

func (r *improvementsRepo) CreateUserImprovement(ctx context.Context, ui domain.UserImprovement) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_improvements (id, user_id) VALUES (?, ?)`, ui.ID, ui.UserID)
	return mapConstraint(err)
}

func (r *improvementsRepo) CreateImprovement(ctx context.Context, imp domain.Improvement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO improvements (id, user_improvement_id, content_ids, completed, device, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		imp.ID, imp.UserImprovementID, encodeStrings(imp.ContentIDs),
		imp.Completed, imp.Device, imp.Rating, imp.CreatedAt)
	return mapConstraint(err)
}

func (r *improvementsRepo) CountImprovements(ctx context.Context, userImprovementID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM improvements WHERE user_improvement_id = ?`, userImprovementID).
		Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
