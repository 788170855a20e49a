package service

import (
	"context"
	"errors"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
)

type ProfileService struct {
	Store store.Store
}

// GetMe fetches the caller's user record.
func (s *ProfileService) GetMe(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

type AccountDetailsInput struct {
	FirstName   string
	LastName    string
	CompanyName string
	Language    string
	Phone       string
}

type AccountDetails struct {
	User     domain.User
	Customer domain.Customer
}

// UpdateAccountDetails edits the caller's name and their tenant's company
// profile together.
func (s *ProfileService) UpdateAccountDetails(ctx context.Context, userID, customerID string, in AccountDetailsInput) (AccountDetails, error) {
	var out AccountDetails
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateUserName(ctx, userID, in.FirstName, in.LastName); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		c, err := tx.Customers().GetCustomerByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}
		c.FirstName = in.FirstName
		c.LastName = in.LastName
		c.CompanyName = in.CompanyName
		c.Language = in.Language
		c.Info.Phone = in.Phone
		if err := tx.Customers().UpdateCustomerProfile(ctx, c.ID, c.FirstName, c.LastName, c.CompanyName, c.Language, c.Info); err != nil {
			return err
		}

		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		out = AccountDetails{User: u, Customer: c}
		return nil
	})
	if err != nil {
		return AccountDetails{}, err
	}
	return out, nil
}
