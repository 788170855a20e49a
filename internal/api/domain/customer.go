package domain

import "time"

// Customer is the tenant record. A customer owns many users and carries the
// billing state for the whole tenant.
type Customer struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	CompanyName string
	Language    string
	B2B         bool

	// Quantity is the seat count. It is kept in sync with Info.Seats; both
	// are written in the same transaction.
	Quantity int
	Info     CustomerInfo

	StripeCustomerID string
	SubscriptionID   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerInfo is the structured replacement for the legacy free-form info
// blob. Seats is duplicated from Customer.Quantity for compatibility with
// the billing UI.
type CustomerInfo struct {
	Seats    int    `json:"seats"`
	Website  string `json:"website,omitempty"`
	Industry string `json:"industry,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
