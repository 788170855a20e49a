package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHS256("test-secret")
	now := time.Now()

	claims := NewClaims("a@x.com", "user-1", "cust-1", DefaultTokenTTL, now)
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", got.Email)
	require.Equal(t, "user-1", got.UserID)
	require.Equal(t, "cust-1", got.CustomerID)
	require.Equal(t, "user-1", got.Subject)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewHS256("secret-a").Sign(
		NewClaims("a@x.com", "u", "c", DefaultTokenTTL, time.Now()))
	require.NoError(t, err)

	_, err = NewHS256("secret-b").Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	h := NewHS256("test-secret")
	token, err := h.Sign(NewClaims("a@x.com", "u", "c", time.Minute, time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = h.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewHS256("test-secret").Verify("not.a.token")
	require.Error(t, err)
}
