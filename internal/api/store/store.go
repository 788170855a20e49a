package store

import (
	"context"
	"errors"

	"github.com/breathehq/breathe/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep the surface tidy and let services
// depend on exactly the tables they touch.
type Store interface {
	Users() Users
	Customers() Customers
	Credentials() Credentials
	Settings() Settings
	Bookmarks() Bookmarks
	ScreenTime() ScreenTime
	Improvements() Improvements
	UserColors() UserColors
	Devices() Devices
	Subscriptions() Subscriptions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Multi-step check-then-write sequences
	// (signup's triple create, the settings bootstrap, seat updates) must
	// run through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsersByCustomer returns every user of one tenant, oldest first.
	ListUsersByCustomer(ctx context.Context, customerID string) ([]domain.User, error)

	// ListUsersByEmails returns the subset of users whose email is in emails.
	ListUsersByEmails(ctx context.Context, emails []string) ([]domain.User, error)

	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUserName mutates the name fields and bumps updated_at.
	UpdateUserName(ctx context.Context, userID, firstName, lastName string) error

	// UpdateUserProfile mutates the editable profile fields of a tenant user.
	UpdateUserProfile(ctx context.Context, userID, firstName, lastName, jobTitle, department string) error

	DeleteUser(ctx context.Context, userID string) error
}

type Customers interface {
	GetCustomerByID(ctx context.Context, id string) (domain.Customer, error)

	// GetCustomerBySubscriptionID resolves the tenant a Stripe subscription
	// belongs to, for webhook processing.
	GetCustomerBySubscriptionID(ctx context.Context, subscriptionID string) (domain.Customer, error)

	CreateCustomer(ctx context.Context, c domain.Customer) error

	// UpdateCustomerCompany sets the company-details fields and the seat
	// count, keeping quantity and info.seats in step.
	UpdateCustomerCompany(ctx context.Context, customerID string, quantity int, info domain.CustomerInfo) error

	// UpdateCustomerProfile mutates the profile fields edited from the
	// account page.
	UpdateCustomerProfile(ctx context.Context, customerID, firstName, lastName, companyName, language string, info domain.CustomerInfo) error

	// UpdateCustomerSeats rewrites the seat count in both places it lives.
	UpdateCustomerSeats(ctx context.Context, customerID string, quantity int, info domain.CustomerInfo) error

	// UpdateCustomerBilling attaches the Stripe identifiers.
	UpdateCustomerBilling(ctx context.Context, customerID, stripeCustomerID, subscriptionID string) error
}

type Credentials interface {
	GetCredentialsByEmail(ctx context.Context, email string) (domain.Credentials, error)
	CreateCredentials(ctx context.Context, c domain.Credentials) error

	// UpdatePasswordHash overwrites the stored hash for a user.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	DeleteCredentialsByUserID(ctx context.Context, userID string) error
}

type Settings interface {
	// GetBundleByUserID returns the settings bundle with all four partitions
	// populated, or ErrNotFound when the user has never been bootstrapped.
	GetBundleByUserID(ctx context.Context, userID string) (domain.SettingsBundle, error)

	// CreateBundle inserts the parent row and all four partitions.
	// Returns ErrAlreadyExists when the user already has a bundle.
	CreateBundle(ctx context.Context, b domain.SettingsBundle) error

	UpdateAppSettings(ctx context.Context, s domain.AppSettings) error
	UpdateBreakSettings(ctx context.Context, s domain.BreakSettings) error
	UpdateColorsSettings(ctx context.Context, s domain.ColorsSettings) error
	UpdateSoundSettings(ctx context.Context, s domain.SoundSettings) error
}

type Bookmarks interface {
	GetBookmarksByUserID(ctx context.Context, userID string) (domain.Bookmarks, error)

	// SaveBookmarks replaces the stored list, creating the row on first write.
	SaveBookmarks(ctx context.Context, b domain.Bookmarks) error
}

type ScreenTime interface {
	GetScreenTime(ctx context.Context, userID, date string) (domain.ScreenTime, error)
	CreateScreenTime(ctx context.Context, st domain.ScreenTime) error
	UpdateScreenTimeBuckets(ctx context.Context, id string, buckets map[string]int) error
}

type Improvements interface {
	GetUserImprovementByUserID(ctx context.Context, userID string) (domain.UserImprovement, error)
	CreateUserImprovement(ctx context.Context, ui domain.UserImprovement) error
	CreateImprovement(ctx context.Context, imp domain.Improvement) error

	// CountImprovements returns the number of break events recorded under
	// one user_improvements anchor.
	CountImprovements(ctx context.Context, userImprovementID string) (int, error)
}

type UserColors interface {
	GetUserColors(ctx context.Context, userID string) (domain.UserColors, error)
	CreateUserColors(ctx context.Context, uc domain.UserColors) error
}

type Devices interface {
	CreateDevice(ctx context.Context, d domain.Device) error
	ListDevicesByUser(ctx context.Context, userID string) ([]domain.Device, error)
}

type Subscriptions interface {
	GetSubscriptionByID(ctx context.Context, subscriptionID string) (domain.Subscription, error)
	CreateSubscription(ctx context.Context, s domain.Subscription) error
	UpdateSubscriptionQuantity(ctx context.Context, subscriptionID string, quantity int) error
	DeleteSubscription(ctx context.Context, subscriptionID string) error
}
