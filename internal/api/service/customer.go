package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/cryptox"
	"github.com/breathehq/breathe/pkg/idx"
	"github.com/breathehq/breathe/pkg/slogx"
)

var ErrNoUsersToAdd = errors.New("no users to add")

type CustomerService struct {
	Store store.Store
}

// ListUsers returns every user of one tenant, oldest first.
func (s *CustomerService) ListUsers(ctx context.Context, customerID string) ([]domain.User, error) {
	return s.Store.Users().ListUsersByCustomer(ctx, customerID)
}

type NewTenantUser struct {
	FirstName  string
	LastName   string
	Email      string
	Department string
}

type AddUsersResult struct {
	Created  []domain.User
	Existing []string
	Failed   []string
}

// AddUsers invites a batch of users into the caller's tenant. Emails that
// already have an account are reported back, the rest are created with a
// throwaway random password. Items run concurrently; the call returns only
// after every item has settled. Partial failure is reported, not rolled back.
func (s *CustomerService) AddUsers(ctx context.Context, customerID string, users []NewTenantUser) (AddUsersResult, error) {
	l := slogx.FromContext(ctx)

	if len(users) == 0 {
		return AddUsersResult{}, ErrNoUsersToAdd
	}

	// 1. Partition by existing email up front.
	emails := make([]string, 0, len(users))
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	existing, err := s.Store.Users().ListUsersByEmails(ctx, emails)
	if err != nil {
		return AddUsersResult{}, err
	}
	taken := make(map[string]bool, len(existing))
	for _, u := range existing {
		taken[u.Email] = true
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res AddUsersResult
	)
	for _, u := range existing {
		res.Existing = append(res.Existing, u.Email)
	}

	// 2. Fan out the creates and join before returning.
	for _, nu := range users {
		if taken[nu.Email] {
			continue
		}
		wg.Add(1)
		go func(nu NewTenantUser) {
			defer wg.Done()

			created, err := s.createTenantUser(ctx, customerID, nu)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.Warn("failed to add tenant user",
					slog.String("email", nu.Email), slog.Any("error", err))
				res.Failed = append(res.Failed, nu.Email)
				return
			}
			res.Created = append(res.Created, created)
		}(nu)
	}
	wg.Wait()

	return res, nil
}

func (s *CustomerService) createTenantUser(ctx context.Context, customerID string, nu NewTenantUser) (domain.User, error) {
	password, err := cryptox.GeneratePassword()
	if err != nil {
		return domain.User{}, err
	}
	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:         idx.New().String(),
		FirstName:  nu.FirstName,
		LastName:   nu.LastName,
		Email:      nu.Email,
		Username:   nu.Email,
		Department: nu.Department,
		Roles:      []string{RoleUser},
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			return err
		}
		return tx.Credentials().CreateCredentials(ctx, domain.Credentials{
			Email:        nu.Email,
			PasswordHash: passHash,
			UserID:       user.ID,
		})
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type UpdateTenantUser struct {
	UserID     string
	FirstName  string
	LastName   string
	JobTitle   string
	Department string
}

// UpdateUsers edits a batch of tenant users best-effort, returning the ids
// that could not be updated.
func (s *CustomerService) UpdateUsers(ctx context.Context, users []UpdateTenantUser) []string {
	l := slogx.FromContext(ctx)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed []string
	)
	for _, uu := range users {
		wg.Add(1)
		go func(uu UpdateTenantUser) {
			defer wg.Done()

			err := s.Store.Users().UpdateUserProfile(ctx, uu.UserID, uu.FirstName, uu.LastName, uu.JobTitle, uu.Department)
			if err != nil {
				l.Warn("failed to update tenant user",
					slog.String("user_id", uu.UserID), slog.Any("error", err))
				mu.Lock()
				failed = append(failed, uu.UserID)
				mu.Unlock()
			}
		}(uu)
	}
	wg.Wait()
	return failed
}

// DeleteUsers removes a batch of tenant users and their credentials
// best-effort, returning the ids that could not be deleted.
func (s *CustomerService) DeleteUsers(ctx context.Context, userIDs []string) []string {
	l := slogx.FromContext(ctx)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed []string
	)
	for _, id := range userIDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			err := s.Store.WithTx(ctx, func(tx store.Tx) error {
				// Credentials may already be gone; only a missing user is
				// a failure.
				if err := tx.Credentials().DeleteCredentialsByUserID(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
				return tx.Users().DeleteUser(ctx, id)
			})
			if err != nil {
				l.Warn("failed to delete tenant user",
					slog.String("user_id", id), slog.Any("error", err))
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return failed
}
