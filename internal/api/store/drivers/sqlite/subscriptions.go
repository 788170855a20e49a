package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type subscriptionsRepo struct {
	q dbtx
}

func (r *subscriptionsRepo) GetSubscriptionByID(ctx context.Context, subscriptionID string) (domain.Subscription, error) {
	var s domain.Subscription
	err := r.q.QueryRowContext(ctx, `
		SELECT subscription_id, customer_id, stripe_customer_id, quantity, created_at
		FROM subscriptions WHERE subscription_id = ?`, subscriptionID).
		Scan(&s.SubscriptionID, &s.CustomerID, &s.StripeCustomerID, &s.Quantity, &s.CreatedAt)
	if err != nil {
		return domain.Subscription{}, mapNotFound(err)
	}
	return s, nil
}

func (r *subscriptionsRepo) CreateSubscription(ctx context.Context, s domain.Subscription) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO subscriptions (subscription_id, customer_id, stripe_customer_id, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.SubscriptionID, s.CustomerID, s.StripeCustomerID, s.Quantity, s.CreatedAt)
	return mapConstraint(err)
}

func (r *subscriptionsRepo) UpdateSubscriptionQuantity(ctx context.Context, subscriptionID string, quantity int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE subscriptions SET quantity = ? WHERE subscription_id = ?`,
		quantity, subscriptionID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *subscriptionsRepo) DeleteSubscription(ctx context.Context, subscriptionID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscription_id = ?`, subscriptionID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
