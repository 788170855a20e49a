package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/pkg/httpx"
)

// Envelope is the uniform response shape: success flag, optional message,
// optional payload, optional session token.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	httpx.WriteJSON(w, status, Envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	httpx.WriteJSON(w, status, Envelope{Success: status < 400, Message: message})
}

// writeServiceError maps the service sentinels onto the wire. Anything
// unrecognized becomes a fixed 500 so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		writeMessage(w, http.StatusBadRequest, "Account with email already exists")
	case errors.Is(err, service.ErrAccountNotFound):
		writeMessage(w, http.StatusBadRequest, "Account with email does not exist")
	case errors.Is(err, service.ErrWrongPassword):
		writeMessage(w, http.StatusUnauthorized, "Wrong password")
	case errors.Is(err, service.ErrCompanyNotFound):
		writeMessage(w, http.StatusBadRequest, "Company does not exist")
	case errors.Is(err, service.ErrUserNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrNoUsersToAdd):
		writeMessage(w, http.StatusBadRequest, "No users to add")
	case errors.Is(err, service.ErrNoSubscription), errors.Is(err, service.ErrSubscriptionMissing):
		writeMessage(w, http.StatusBadRequest, "Subscription does not exist")
	case errors.Is(err, service.ErrUnknownProvider):
		writeMessage(w, http.StatusBadRequest, "Unknown provider")
	case errors.Is(err, service.ErrWebhookSignature):
		writeMessage(w, http.StatusBadRequest, "Invalid signature")
	default:
		writeMessage(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// UserResponse is the user projection returned to clients.
type UserResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	JobTitle   string    `json:"jobTitle,omitempty"`
	Department string    `json:"department,omitempty"`
	Roles      []string  `json:"roles"`
	CustomerID string    `json:"customerId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Username:   u.Username,
		JobTitle:   u.JobTitle,
		Department: u.Department,
		Roles:      u.Roles,
		CustomerID: u.CustomerID,
		CreatedAt:  u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// CustomerResponse is the tenant projection returned to clients.
type CustomerResponse struct {
	ID          string              `json:"id"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	Email       string              `json:"email"`
	CompanyName string              `json:"companyName"`
	Language    string              `json:"language,omitempty"`
	B2B         bool                `json:"b2b"`
	Quantity    int                 `json:"quantity"`
	Info        domain.CustomerInfo `json:"info"`
}

func toCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		CompanyName: c.CompanyName,
		Language:    c.Language,
		B2B:         c.B2B,
		Quantity:    c.Quantity,
		Info:        c.Info,
	}
}
