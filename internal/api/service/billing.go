package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/slogx"
)

var (
	ErrNoSubscription      = errors.New("customer has no subscription")
	ErrWebhookSignature    = errors.New("webhook signature verification failed")
	ErrSubscriptionMissing = errors.New("subscription does not exist")
)

type BillingService struct {
	Store store.Store

	// PlanID is the Stripe price id every checkout session subscribes to.
	PlanID        string
	SuccessURL    string
	CancelURL     string
	WebhookSecret string
}

// CreateCheckout opens a Stripe Checkout session for quantity seats and
// returns its id. The customer id rides along as client_reference_id so the
// completion webhook can find the tenant again.
func (s *BillingService) CreateCheckout(ctx context.Context, customerID string, quantity int64) (string, error) {
	l := slogx.FromContext(ctx)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(s.PlanID),
			Quantity: stripe.Int64(quantity),
		}},
		ClientReferenceID: stripe.String(customerID),
		SuccessURL:        stripe.String(s.SuccessURL),
		CancelURL:         stripe.String(s.CancelURL),
	}
	params.AddMetadata("quantity", strconv.FormatInt(quantity, 10))
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		l.Error("failed to create checkout session",
			slog.String("customer_id", customerID), slog.Any("error", err))
		return "", err
	}
	return sess.ID, nil
}

// AddSeats grows the customer's Stripe subscription by quantity seats and
// mirrors the new total into the local subscription and customer rows.
func (s *BillingService) AddSeats(ctx context.Context, customerID string, quantity int64) error {
	l := slogx.FromContext(ctx)

	customer, err := s.Store.Customers().GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if customer.SubscriptionID == "" {
		return ErrNoSubscription
	}

	getParams := &stripe.SubscriptionParams{}
	getParams.Context = ctx
	sub, err := subscription.Get(customer.SubscriptionID, getParams)
	if err != nil {
		return err
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return ErrSubscriptionMissing
	}

	item := sub.Items.Data[0]
	newQuantity := item.Quantity + quantity

	updParams := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{{
			ID:       stripe.String(item.ID),
			Quantity: stripe.Int64(newQuantity),
		}},
	}
	updParams.Context = ctx
	if _, err := subscription.Update(customer.SubscriptionID, updParams); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Subscriptions().UpdateSubscriptionQuantity(ctx, customer.SubscriptionID, int(newQuantity)); err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		info := customer.Info
		info.Seats = int(newQuantity)
		return tx.Customers().UpdateCustomerSeats(ctx, customer.ID, int(newQuantity), info)
	})
	if err != nil {
		return err
	}

	l.Info("subscription seats updated",
		slog.String("customer_id", customerID),
		slog.Int64("quantity", newQuantity),
	)
	return nil
}

// CancelSubscription cancels at Stripe and removes the local record, zeroing
// the tenant's seats.
func (s *BillingService) CancelSubscription(ctx context.Context, customerID string) error {
	customer, err := s.Store.Customers().GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}
	if customer.SubscriptionID == "" {
		return ErrNoSubscription
	}

	cancelParams := &stripe.SubscriptionCancelParams{}
	cancelParams.Context = ctx
	if _, err := subscription.Cancel(customer.SubscriptionID, cancelParams); err != nil {
		return err
	}

	return s.dropSubscription(ctx, customer)
}

// HandleWebhook verifies and dispatches one Stripe event. Unknown event
// types are logged and acknowledged.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	l := slogx.FromContext(ctx)

	event, err := webhook.ConstructEvent(payload, signature, s.WebhookSecret)
	if err != nil {
		l.Warn("rejected webhook", slog.Any("error", err))
		return ErrWebhookSignature
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		return s.completeCheckout(ctx, sess)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.subscriptionDeleted(ctx, sub)

	case "charge.succeeded":
		// Acknowledged; nothing to record.
		return nil

	default:
		l.Info("ignoring webhook event", slog.String("type", string(event.Type)))
		return nil
	}
}

func (s *BillingService) completeCheckout(ctx context.Context, sess stripe.CheckoutSession) error {
	l := slogx.FromContext(ctx)

	customerID := sess.ClientReferenceID
	quantity := 1
	if q, err := strconv.Atoi(sess.Metadata["quantity"]); err == nil && q > 0 {
		quantity = q
	}

	subscriptionID := ""
	if sess.Subscription != nil {
		subscriptionID = sess.Subscription.ID
	}
	stripeCustomerID := ""
	if sess.Customer != nil {
		stripeCustomerID = sess.Customer.ID
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		customer, err := tx.Customers().GetCustomerByID(ctx, customerID)
		if err != nil {
			return err
		}

		if err := tx.Subscriptions().CreateSubscription(ctx, domain.Subscription{
			SubscriptionID:   subscriptionID,
			CustomerID:       customer.ID,
			StripeCustomerID: stripeCustomerID,
			Quantity:         quantity,
			CreatedAt:        time.Now().UTC(),
		}); err != nil && !errors.Is(err, store.ErrAlreadyExists) {
			return err
		}

		if err := tx.Customers().UpdateCustomerBilling(ctx, customer.ID, stripeCustomerID, subscriptionID); err != nil {
			return err
		}

		seats := customer.Quantity + quantity
		info := customer.Info
		info.Seats = seats
		return tx.Customers().UpdateCustomerSeats(ctx, customer.ID, seats, info)
	})
	if err != nil {
		return err
	}

	l.Info("checkout completed",
		slog.String("customer_id", customerID),
		slog.String("subscription_id", subscriptionID),
		slog.Int("quantity", quantity),
	)
	return nil
}

func (s *BillingService) subscriptionDeleted(ctx context.Context, sub stripe.Subscription) error {
	customer, err := s.Store.Customers().GetCustomerBySubscriptionID(ctx, sub.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Cancelled locally first; nothing to clean up.
			return nil
		}
		return err
	}
	return s.dropSubscription(ctx, customer)
}

func (s *BillingService) dropSubscription(ctx context.Context, customer domain.Customer) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		local, err := tx.Subscriptions().GetSubscriptionByID(ctx, customer.SubscriptionID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err == nil {
			if err := tx.Subscriptions().DeleteSubscription(ctx, local.SubscriptionID); err != nil {
				return err
			}
		}

		seats := customer.Quantity - local.Quantity
		if seats < 0 {
			seats = 0
		}
		info := customer.Info
		info.Seats = seats
		if err := tx.Customers().UpdateCustomerSeats(ctx, customer.ID, seats, info); err != nil {
			return err
		}
		return tx.Customers().UpdateCustomerBilling(ctx, customer.ID, customer.StripeCustomerID, "")
	})
}
