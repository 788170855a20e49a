// Package jwtx issues and verifies the bearer tokens that authenticate every
// guarded API route. Tokens are HS256-signed with a single shared secret and
// carry the caller's user and customer identity.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window for issued bearer tokens.
const DefaultTokenTTL = 10 * 24 * time.Hour

// Claims are the access-token claims shared by login and the auth guard.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated account.
	Email string `json:"email,omitempty"`

	// UserID of the authenticated user.
	UserID string `json:"userId,omitempty"`

	// CustomerID is the tenant the user belongs to.
	CustomerID string `json:"customerId,omitempty"`
}

// NewClaims builds minimally-correct claims for a login at the given instant.
func NewClaims(email, userID, customerID string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:      email,
		UserID:     userID,
		CustomerID: customerID,
	}
}

// ValidateExpiry checks the exp claim against the current time.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
