package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/breathehq/breathe/internal/api/store/drivers/sqlite"
	"github.com/breathehq/breathe/pkg/jwtx"
)

func newTestAccounts(t *testing.T) (*AccountService, *sqlite.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &AccountService{
		Store:  st,
		Signer: jwtx.NewHS256("test-secret"),
	}, st
}

func testSignup(email string) SignupInput {
	return SignupInput{
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       email,
		Password:    "correct horse battery",
		CompanyName: "Acme",
		Language:    "en",
	}
}

func TestSignup(t *testing.T) {
	svc, st := newTestAccounts(t)
	ctx := context.Background()

	t.Run("creates customer user and credentials", func(t *testing.T) {
		res, err := svc.Signup(ctx, testSignup("grace@acme.test"))
		require.NoError(t, err)

		require.Equal(t, "grace@acme.test", res.User.Email)
		require.Equal(t, "grace@acme.test", res.User.Username)
		require.ElementsMatch(t, []string{RoleUser, RoleAgent}, res.User.Roles)
		require.True(t, res.Customer.B2B)
		require.Equal(t, 1, res.Customer.Quantity)
		require.Equal(t, 1, res.Customer.Info.Seats)
		require.Equal(t, res.Customer.ID, res.User.CustomerID)

		creds, err := st.Credentials().GetCredentialsByEmail(ctx, "grace@acme.test")
		require.NoError(t, err)
		require.Equal(t, res.User.ID, creds.UserID)
	})

	t.Run("duplicate email leaves store untouched", func(t *testing.T) {
		_, err := svc.Signup(ctx, testSignup("grace@acme.test"))
		require.ErrorIs(t, err, ErrEmailExists)

		users, err := st.Users().ListUsersByEmails(ctx, []string{"grace@acme.test"})
		require.NoError(t, err)
		require.Len(t, users, 1)
	})
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, testSignup("ada@acme.test"))
	require.NoError(t, err)

	t.Run("issued token passes verification", func(t *testing.T) {
		login, err := svc.Login(ctx, "ada@acme.test", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, res.User.ID, login.UserID)

		verifier := jwtx.NewHS256("test-secret")
		claims, err := verifier.Verify(login.Token)
		require.NoError(t, err)
		require.Equal(t, res.User.ID, claims.UserID)
		require.Equal(t, res.Customer.ID, claims.CustomerID)
		require.Equal(t, "ada@acme.test", claims.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@acme.test", "whatever")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@acme.test", "incorrect")
		require.ErrorIs(t, err, ErrWrongPassword)
	})
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAccounts(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, testSignup("lin@acme.test"))
	require.NoError(t, err)

	t.Run("rejects wrong old password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, res.User.ID, res.User.Email, "incorrect", "new password")
		require.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rotates the hash", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, res.User.ID, res.User.Email, "correct horse battery", "new password"))

		_, err := svc.Login(ctx, "lin@acme.test", "correct horse battery")
		require.ErrorIs(t, err, ErrWrongPassword)

		_, err = svc.Login(ctx, "lin@acme.test", "new password")
		require.NoError(t, err)
	})
}

func TestSetCompanyDetails(t *testing.T) {
	svc, st := newTestAccounts(t)
	ctx := context.Background()

	res, err := svc.Signup(ctx, testSignup("mei@acme.test"))
	require.NoError(t, err)

	t.Run("unknown company", func(t *testing.T) {
		_, err := svc.SetCompanyDetails(ctx, "missing", CompanyDetailsInput{Seats: 5})
		require.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("seats land in both fields", func(t *testing.T) {
		c, err := svc.SetCompanyDetails(ctx, res.Customer.ID, CompanyDetailsInput{
			Seats:    12,
			Website:  "https://acme.test",
			Industry: "software",
			Country:  "AU",
		})
		require.NoError(t, err)
		require.Equal(t, 12, c.Quantity)
		require.Equal(t, 12, c.Info.Seats)

		stored, err := st.Customers().GetCustomerByID(ctx, res.Customer.ID)
		require.NoError(t, err)
		require.Equal(t, 12, stored.Quantity)
		require.Equal(t, "https://acme.test", stored.Info.Website)
	})
}
