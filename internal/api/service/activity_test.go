package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/breathehq/breathe/internal/api/store"
)

func newActivityFixtures(t *testing.T) (store.Store, string) {
	t.Helper()

	accounts, st := newTestAccounts(t)
	res, err := accounts.Signup(context.Background(), testSignup("activity@acme.test"))
	require.NoError(t, err)
	return st, res.User.ID
}

func TestBookmarks(t *testing.T) {
	st, userID := newActivityFixtures(t)
	svc := &BookmarkService{Store: st}
	ctx := context.Background()

	t.Run("empty before first save", func(t *testing.T) {
		got, err := svc.List(ctx, userID)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("append preserves order and dedupes", func(t *testing.T) {
		got, err := svc.Add(ctx, userID, []string{"a", "b"})
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, got)

		got, err = svc.Add(ctx, userID, []string{"b", "c"})
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, got)

		read, err := svc.List(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b", "c"}, read)
	})
}

func TestScreenTime(t *testing.T) {
	st, userID := newActivityFixtures(t)
	svc := &ScreenTimeService{Store: st}
	ctx := context.Background()

	t.Run("today bootstraps empty", func(t *testing.T) {
		today, err := svc.Today(ctx, userID)
		require.NoError(t, err)
		require.Empty(t, today.Buckets)
		require.NotEmpty(t, today.Date)
	})

	t.Run("record round trip", func(t *testing.T) {
		want := map[string]int{"09:00": 42, "10:00": 7}
		stored, err := svc.Record(ctx, userID, "2026-08-31", want)
		require.NoError(t, err)
		require.Equal(t, want, stored.Buckets)

		read, err := st.ScreenTime().GetScreenTime(ctx, userID, "2026-08-31")
		require.NoError(t, err)
		require.Equal(t, want, read.Buckets)
	})

	t.Run("record overwrites same date", func(t *testing.T) {
		next := map[string]int{"09:00": 50}
		stored, err := svc.Record(ctx, userID, "2026-08-31", next)
		require.NoError(t, err)
		require.Equal(t, next, stored.Buckets)
	})
}

func TestBreakEvents(t *testing.T) {
	st, userID := newActivityFixtures(t)
	svc := &ImprovementService{Store: st}
	ctx := context.Background()

	t.Run("zero before any break", func(t *testing.T) {
		n, err := svc.TotalBreaks(ctx, userID)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("events accumulate", func(t *testing.T) {
		first, err := svc.RecordBreak(ctx, userID, true, 5)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := svc.RecordBreak(ctx, userID, false, 0)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		n, err := svc.TotalBreaks(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}

func TestDevices(t *testing.T) {
	st, userID := newActivityFixtures(t)
	svc := &DeviceService{Store: st}
	ctx := context.Background()

	d, err := svc.RecordDevice(ctx, userID, "desktop", "chrome", "linux")
	require.NoError(t, err)
	require.Equal(t, userID, d.UserID)

	list, err := svc.ListDevices(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "chrome", list[0].Browser)
}
