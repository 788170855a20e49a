package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedTenant(t *testing.T, s *Store) (domain.Customer, domain.User) {
	t.Helper()

	now := time.Now().UTC()
	c := domain.Customer{
		ID:        idx.New().String(),
		Email:     "owner@acme.test",
		B2B:       true,
		Quantity:  1,
		Info:      domain.CustomerInfo{Seats: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.Customers().CreateCustomer(context.Background(), c))

	u := domain.User{
		ID:         idx.New().String(),
		Email:      "owner@acme.test",
		Username:   "owner@acme.test",
		Roles:      []string{"USER", "AGENT"},
		CustomerID: c.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return c, u
}

func TestUsersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, u := seedTenant(t, s)

	t.Run("GetByEmail", func(t *testing.T) {
		got, err := s.Users().GetUserByEmail(ctx, u.Email)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, []string{"USER", "AGENT"}, got.Roles)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("UpdateName", func(t *testing.T) {
		require.NoError(t, s.Users().UpdateUserName(ctx, u.ID, "Ada", "Lovelace"))
		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada", got.FirstName)
		require.Equal(t, "Lovelace", got.LastName)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := s.Users().UpdateUserName(ctx, "missing", "A", "B")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestSettingsBundle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, u := seedTenant(t, s)

	bundle := domain.SettingsBundle{
		ID:     idx.New().String(),
		UserID: u.ID,
		App:    domain.AppSettings{UserID: u.ID, Theme: "light", Language: "en", ActiveFrom: "09:00", ActiveTo: "17:00"},
		Breaks: domain.BreakSettings{UserID: u.ID, Enabled: true, FrequencyMinutes: 60, DurationMinutes: 5, SoundOn: true},
		Colors: domain.ColorsSettings{UserID: u.ID, Enabled: true, Palette: []string{"#EBCF6B"}, Opacity: 0.35},
		Sounds: domain.SoundSettings{UserID: u.ID, Enabled: true, Volume: 50},
	}

	t.Run("MissingBeforeCreate", func(t *testing.T) {
		_, err := s.Settings().GetBundleByUserID(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("CreateAndFetch", func(t *testing.T) {
		require.NoError(t, s.Settings().CreateBundle(ctx, bundle))

		got, err := s.Settings().GetBundleByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, bundle.ID, got.ID)
		require.Equal(t, bundle.App, got.App)
		require.Equal(t, bundle.Breaks, got.Breaks)
		require.Equal(t, bundle.Colors, got.Colors)
		require.Equal(t, bundle.Sounds, got.Sounds)
	})

	t.Run("SecondCreateConflicts", func(t *testing.T) {
		again := bundle
		again.ID = idx.New().String()
		err := s.Settings().CreateBundle(ctx, again)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("UpdatePartition", func(t *testing.T) {
		next := bundle.Breaks
		next.FrequencyMinutes = 30
		require.NoError(t, s.Settings().UpdateBreakSettings(ctx, next))

		got, err := s.Settings().GetBundleByUserID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 30, got.Breaks.FrequencyMinutes)
	})
}

func TestScreenTimeUpsertKey(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, u := seedTenant(t, s)

	st := domain.ScreenTime{
		ID:      idx.New().String(),
		UserID:  u.ID,
		Date:    "2026-09-01",
		Buckets: map[string]int{"09:00": 40},
	}
	require.NoError(t, s.ScreenTime().CreateScreenTime(ctx, st))

	// Same user+date is unique.
	dup := st
	dup.ID = idx.New().String()
	require.ErrorIs(t, s.ScreenTime().CreateScreenTime(ctx, dup), store.ErrAlreadyExists)

	require.NoError(t, s.ScreenTime().UpdateScreenTimeBuckets(ctx, st.ID, map[string]int{"09:00": 55, "10:00": 12}))

	got, err := s.ScreenTime().GetScreenTime(ctx, u.ID, "2026-09-01")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"09:00": 55, "10:00": 12}, got.Buckets)
}

func TestBookmarksReplace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, u := seedTenant(t, s)

	require.NoError(t, s.Bookmarks().SaveBookmarks(ctx, domain.Bookmarks{UserID: u.ID, ContentIDs: []string{"a", "b"}}))
	require.NoError(t, s.Bookmarks().SaveBookmarks(ctx, domain.Bookmarks{UserID: u.ID, ContentIDs: []string{"c"}}))

	got, err := s.Bookmarks().GetBookmarksByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, got.ContentIDs)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c, _ := seedTenant(t, s)

	wantErr := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now().UTC()
		u := domain.User{
			ID:         idx.New().String(),
			Email:      "second@acme.test",
			Username:   "second@acme.test",
			CustomerID: c.ID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)

	_, err = s.Users().GetUserByEmail(ctx, "second@acme.test")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCustomerSeatsStayInStep(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c, _ := seedTenant(t, s)

	info := c.Info
	info.Seats = 8
	require.NoError(t, s.Customers().UpdateCustomerSeats(ctx, c.ID, 8, info))

	got, err := s.Customers().GetCustomerByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 8, got.Quantity)
	require.Equal(t, 8, got.Info.Seats)
}
