package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID     ctxKey = "user_id"
	CtxKeyCustomerID ctxKey = "customer_id"
	CtxKeyEmail      ctxKey = "email"
)

// UserIDFromCtx returns the authenticated user id, or "" outside a guarded
// route.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// CustomerIDFromCtx returns the authenticated user's tenant id, or "".
func CustomerIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCustomerID).(string); ok {
		return v
	}
	return ""
}

// EmailFromCtx returns the authenticated user's email, or "".
func EmailFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyEmail).(string); ok {
		return v
	}
	return ""
}
