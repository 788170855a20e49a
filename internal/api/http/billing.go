package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
	"github.com/breathehq/breathe/pkg/slogx"
)

// Stripe caps webhook payloads well below this; reject anything larger.
const maxWebhookBody = 64 << 10

type BillingHandler struct {
	BillingService *service.BillingService
}

type checkoutResponse struct {
	ID string `json:"id"`
}

// HandleCreateSubscription opens a Stripe Checkout session.
//
//	@Summary	Create a subscription checkout session
//	@Tags		Billing
//	@Security	BearerAuth
//	@Produce	json
//	@Param		quantity	query		int		true	"Seat count"
//	@Param		id			query		string	false	"Customer id override"
//	@Success	200			{object}	Envelope{data=checkoutResponse}
//	@Failure	400			{object}	Envelope
//	@Router		/create-subscription [post].
func (h *BillingHandler) HandleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customerID := r.URL.Query().Get("id")
	if customerID == "" {
		customerID = httpx.CustomerIDFromCtx(ctx)
	}

	quantity, err := strconv.ParseInt(r.URL.Query().Get("quantity"), 10, 64)
	if err != nil || quantity < 1 {
		writeMessage(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	sessionID, err := h.BillingService.CreateCheckout(ctx, customerID, quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, checkoutResponse{ID: sessionID})
}

// HandleUpdateSubscription adds seats to the caller's subscription.
//
//	@Summary	Add subscription seats
//	@Tags		Billing
//	@Security	BearerAuth
//	@Produce	json
//	@Param		quantity	query		int	true	"Seats to add"
//	@Success	200			{object}	Envelope
//	@Failure	400			{object}	Envelope	"No subscription"
//	@Router		/update-subscription [post].
func (h *BillingHandler) HandleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quantity, err := strconv.ParseInt(r.URL.Query().Get("quantity"), 10, 64)
	if err != nil || quantity < 1 {
		writeMessage(w, http.StatusBadRequest, "Invalid quantity")
		return
	}

	if err := h.BillingService.AddSeats(ctx, httpx.CustomerIDFromCtx(ctx), quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Subscription updated")
}

// HandleCancelSubscription cancels the caller's subscription.
//
//	@Summary	Cancel subscription
//	@Tags		Billing
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	Envelope
//	@Failure	400	{object}	Envelope	"No subscription"
//	@Router		/cancel-subscription [post].
func (h *BillingHandler) HandleCancelSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.BillingService.CancelSubscription(ctx, httpx.CustomerIDFromCtx(ctx)); err != nil {
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Subscription cancelled")
}

// HandleWebhook processes Stripe callbacks. This route is unauthenticated;
// the Stripe-Signature header is the trust anchor.
//
//	@Summary	Stripe webhook
//	@Tags		Billing
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	Envelope
//	@Failure	400	{object}	Envelope	"Bad signature or payload"
//	@Router		/stripe-webhook [post].
func (h *BillingHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	if err := h.BillingService.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
		log.Warn("webhook processing failed", "err", err)
		writeServiceError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}
