package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

var ErrUnknownProvider = errors.New("unknown oauth provider")

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type OAuthService struct {
	Store    store.Store
	Accounts *AccountService

	ClientID     string
	ClientSecret string
	RedirectURL  string

	client *resty.Client
}

func NewOAuthService(st store.Store, accounts *AccountService, clientID, clientSecret, redirectURL string) *OAuthService {
	return &OAuthService{
		Store:        st,
		Accounts:     accounts,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		client:       resty.New().SetTimeout(10 * time.Second),
	}
}

// RedirectURLFor returns the provider consent page URL. Only google is
// supported.
func (s *OAuthService) RedirectURLFor(provider string) (string, error) {
	if provider != "google" {
		return "", ErrUnknownProvider
	}

	q := url.Values{}
	q.Set("client_id", s.ClientID)
	q.Set("redirect_uri", s.RedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("access_type", "online")
	return googleAuthURL + "?" + q.Encode(), nil
}

type googleToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type googleProfile struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// HandleGoogleCallback exchanges the authorization code, resolves or creates
// the local account for the Google profile, and returns a session token.
func (s *OAuthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	var tok googleToken
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     s.ClientID,
			"client_secret": s.ClientSecret,
			"redirect_uri":  s.RedirectURL,
			"grant_type":    "authorization_code",
		}).
		SetResult(&tok).
		Post(googleTokenURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("google token exchange failed: %s", resp.Status())
	}

	var profile googleProfile
	resp, err = s.client.R().
		SetContext(ctx).
		SetAuthToken(tok.AccessToken).
		SetResult(&profile).
		Get(googleUserinfoURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("google userinfo failed: %s", resp.Status())
	}
	if profile.Email == "" {
		return "", errors.New("google profile has no email")
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, profile.Email)
	if errors.Is(err, store.ErrNotFound) {
		user, err = s.createFromProfile(ctx, profile)
	}
	if err != nil {
		return "", err
	}

	return s.Accounts.IssueToken(user)
}

// createFromProfile provisions a single-seat b2c account for a first-time
// OAuth login. No credentials row is written; the account is OAuth-only.
func (s *OAuthService) createFromProfile(ctx context.Context, profile googleProfile) (domain.User, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        idx.New().String(),
		FirstName: profile.GivenName,
		LastName:  profile.FamilyName,
		Email:     profile.Email,
		B2B:       false,
		Quantity:  1,
		Info:      domain.CustomerInfo{Seats: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := domain.User{
		ID:         idx.New().String(),
		FirstName:  profile.GivenName,
		LastName:   profile.FamilyName,
		Email:      profile.Email,
		Username:   profile.Email,
		Roles:      []string{RoleUser, RoleAgent},
		CustomerID: customer.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Customers().CreateCustomer(ctx, customer); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a first-login race; the other request's account wins.
		return s.Store.Users().GetUserByEmail(ctx, profile.Email)
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
