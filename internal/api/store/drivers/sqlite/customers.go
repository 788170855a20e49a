package sqlite

import (
	"context"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
)

type customersRepo struct {
	q dbtx
}

const customerColumns = `id, first_name, last_name, email, company_name, language, b2b, quantity, info, stripe_customer_id, subscription_id, created_at, updated_at`

func scanCustomer(row interface{ Scan(dest ...any) error }) (domain.Customer, error) {
	var c domain.Customer
	var info string
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CompanyName,
		&c.Language, &c.B2B, &c.Quantity, &info,
		&c.StripeCustomerID, &c.SubscriptionID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	c.Info = decodeInfo(info)
	return c, nil
}

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	c, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) GetCustomerBySubscriptionID(ctx context.Context, subscriptionID string) (domain.Customer, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE subscription_id = ?`, subscriptionID)
	c, err := scanCustomer(row)
	if err != nil {
		return domain.Customer{}, mapNotFound(err)
	}
	return c, nil
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, company_name, language, b2b, quantity, info, stripe_customer_id, subscription_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.FirstName, c.LastName, c.Email, c.CompanyName,
		c.Language, c.B2B, c.Quantity, encodeInfo(c.Info),
		c.StripeCustomerID, c.SubscriptionID,
		c.CreatedAt, c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *customersRepo) UpdateCustomerCompany(ctx context.Context, customerID string, quantity int, info domain.CustomerInfo) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET quantity = ?, info = ?, updated_at = ? WHERE id = ?`,
		quantity, encodeInfo(info), time.Now().UTC(), customerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *customersRepo) UpdateCustomerProfile(ctx context.Context, customerID, firstName, lastName, companyName, language string, info domain.CustomerInfo) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE customers SET first_name = ?, last_name = ?, company_name = ?, language = ?, info = ?, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, companyName, language, encodeInfo(info), time.Now().UTC(), customerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *customersRepo) UpdateCustomerSeats(ctx context.Context, customerID string, quantity int, info domain.CustomerInfo) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET quantity = ?, info = ?, updated_at = ? WHERE id = ?`,
		quantity, encodeInfo(info), time.Now().UTC(), customerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *customersRepo) UpdateCustomerBilling(ctx context.Context, customerID, stripeCustomerID, subscriptionID string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE customers SET stripe_customer_id = ?, subscription_id = ?, updated_at = ? WHERE id = ?`,
		stripeCustomerID, subscriptionID, time.Now().UTC(), customerID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
