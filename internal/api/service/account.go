package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/cryptox"
	"github.com/breathehq/breathe/pkg/idx"
	"github.com/breathehq/breathe/pkg/jwtx"
	"github.com/breathehq/breathe/pkg/slogx"
)

var (
	ErrEmailExists     = errors.New("account with email already exists")
	ErrAccountNotFound = errors.New("account with email does not exist")
	ErrWrongPassword   = errors.New("wrong password")
	ErrCompanyNotFound = errors.New("company does not exist")
	ErrUserNotFound    = errors.New("user not found")
)

// Default roles every signup receives. AGENT marks the tenant owner who may
// manage other users; plain invited users get USER only.
const (
	RoleUser  = "USER"
	RoleAgent = "AGENT"
)

type AccountService struct {
	Store  store.Store
	Signer jwtx.Signer
}

type SignupInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	CompanyName string
	Language    string
}

type SignupResult struct {
	User     domain.User
	Customer domain.Customer
}

// Signup creates the tenant customer, its first user, and the credentials in
// one transaction. A duplicate email fails before anything is written.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	l := slogx.FromContext(ctx)

	passHash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return SignupResult{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:          idx.New().String(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		CompanyName: in.CompanyName,
		Language:    in.Language,
		B2B:         true,
		Quantity:    1,
		Info:        domain.CustomerInfo{Seats: 1},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	user := domain.User{
		ID:         idx.New().String(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Username:   in.Email,
		Roles:      []string{RoleUser, RoleAgent},
		CustomerID: customer.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Duplicate check happens inside the same transaction as the
		// writes, so a racing signup for the same email cannot slip through.
		if _, err := tx.Users().GetUserByEmail(ctx, in.Email); err == nil {
			return ErrEmailExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		// 2. Customer, user, credentials — all or nothing.
		if err := tx.Customers().CreateCustomer(ctx, customer); err != nil {
			return err
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailExists
			}
			return err
		}
		return tx.Credentials().CreateCredentials(ctx, domain.Credentials{
			Email:        in.Email,
			PasswordHash: passHash,
			UserID:       user.ID,
		})
	})
	if err != nil {
		return SignupResult{}, err
	}

	l.Info("account created",
		slog.String("user_id", user.ID),
		slog.String("customer_id", customer.ID),
	)
	return SignupResult{User: user, Customer: customer}, nil
}

type LoginResult struct {
	Email  string
	UserID string
	Token  string
}

// Login verifies the credentials and mints a session token carrying the
// user's email, user id, and customer id.
func (s *AccountService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	creds, err := s.Store.Credentials().GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrAccountNotFound
		}
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, creds.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Warn("failed login attempt", slog.String("email", email))
			return LoginResult{}, ErrWrongPassword
		}
		return LoginResult{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, creds.UserID)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.Signer.Sign(jwtx.NewClaims(user.Email, user.ID, user.CustomerID, jwtx.DefaultTokenTTL, time.Now()))
	if err != nil {
		l.Error("failed to sign token", slog.Any("error", err))
		return LoginResult{}, err
	}

	return LoginResult{Email: user.Email, UserID: user.ID, Token: token}, nil
}

// IssueToken mints a session token for an already-authenticated user, e.g.
// after an OAuth callback.
func (s *AccountService) IssueToken(user domain.User) (string, error) {
	return s.Signer.Sign(jwtx.NewClaims(user.Email, user.ID, user.CustomerID, jwtx.DefaultTokenTTL, time.Now()))
}

type CompanyDetailsInput struct {
	Seats    int
	Website  string
	Industry string
	Country  string
}

// SetCompanyDetails fills in the onboarding company profile for a tenant and
// sets the seat count in both places it lives.
func (s *AccountService) SetCompanyDetails(ctx context.Context, customerID string, in CompanyDetailsInput) (domain.Customer, error) {
	var out domain.Customer
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		c, err := tx.Customers().GetCustomerByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}

		c.Quantity = in.Seats
		c.Info.Seats = in.Seats
		c.Info.Website = in.Website
		c.Info.Industry = in.Industry
		c.Info.Country = in.Country

		if err := tx.Customers().UpdateCustomerCompany(ctx, c.ID, c.Quantity, c.Info); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return domain.Customer{}, err
	}
	return out, nil
}

// ChangePassword verifies the caller's current password before storing a new
// hash.
func (s *AccountService) ChangePassword(ctx context.Context, userID, email, oldPassword, newPassword string) error {
	creds, err := s.Store.Credentials().GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, creds.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrWrongPassword
		}
		return err
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.Credentials().UpdatePasswordHash(ctx, userID, newHash)
}
