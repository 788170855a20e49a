package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type credentialsRepo struct {
	q dbtx
}

func (r *credentialsRepo) GetCredentialsByEmail(ctx context.Context, email string) (domain.Credentials, error) {
	var c domain.Credentials
	err := r.q.QueryRowContext(ctx,
		`SELECT email, password_hash, user_id FROM credentials WHERE email = ?`, email).
		Scan(&c.Email, &c.PasswordHash, &c.UserID)
	if err != nil {
		return domain.Credentials{}, mapNotFound(err)
	}
	return c, nil
}

func (r *credentialsRepo) CreateCredentials(ctx context.Context, c domain.Credentials) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO credentials (email, password_hash, user_id) VALUES (?, ?, ?)`,
		c.Email, c.PasswordHash, c.UserID)
	return mapConstraint(err)
}

func (r *credentialsRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE credentials SET password_hash = ? WHERE user_id = ?`, newHash, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *credentialsRepo) DeleteCredentialsByUserID(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM credentials WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
