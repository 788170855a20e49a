package sqlite

import (
	"context"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, first_name, last_name, email, username, job_title, department, roles, customer_id, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var u domain.User
	var roles string
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username,
		&u.JobTitle, &u.Department, &roles, &u.CustomerID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Roles = splitRoles(roles)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) ListUsersByCustomer(ctx context.Context, customerID string) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE customer_id = ? ORDER BY created_at ASC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) ListUsersByEmails(ctx context.Context, emails []string) ([]domain.User, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	args := make([]any, len(emails))
	for i, e := range emails {
		args[i] = e
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email IN (`+placeholders(len(emails))+`)`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, username, job_title, department, roles, customer_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.Username,
		u.JobTitle, u.Department, joinRoles(u.Roles), u.CustomerID,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUserName(ctx context.Context, userID, firstName, lastName string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, updated_at = ? WHERE id = ?`,
		firstName, lastName, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdateUserProfile(ctx context.Context, userID, firstName, lastName, jobTitle, department string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET first_name = ?, last_name = ?, job_title = ?, department = ?, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, jobTitle, department, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
