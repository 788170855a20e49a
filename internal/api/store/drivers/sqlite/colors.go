package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type userColorsRepo struct {
	q dbtx
}

func (r *userColorsRepo) GetUserColors(ctx context.Context, userID string) (domain.UserColors, error) {
	var uc domain.UserColors
	var colors string
	err := r.q.QueryRowContext(ctx,
		`SELECT user_id, colors FROM user_colors WHERE user_id = ?`, userID).
		Scan(&uc.UserID, &colors)
	if err != nil {
		return domain.UserColors{}, mapNotFound(err)
	}
	uc.Colors = decodeStrings(colors)
	return uc, nil
}

func (r *userColorsRepo) CreateUserColors(ctx context.Context, uc domain.UserColors) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_colors (user_id, colors) VALUES (?, ?)`,
		uc.UserID, encodeStrings(uc.Colors))
	return mapConstraint(err)
}
