package domain

import "time"

// Subscription mirrors a Stripe subscription for one customer. It is written
// by webhook events and is not the source of truth for entitlement; seat
// counts live on the Customer.
type Subscription struct {
	SubscriptionID   string // Stripe subscription id
	CustomerID       string
	StripeCustomerID string
	Quantity         int
	CreatedAt        time.Time
}
