package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/breathehq/breathe/internal/api/domain"
)

func newTestSettings(t *testing.T) (*SettingsService, string) {
	t.Helper()

	accounts, st := newTestAccounts(t)
	res, err := accounts.Signup(context.Background(), testSignup("settings@acme.test"))
	require.NoError(t, err)

	return &SettingsService{Store: st}, res.User.ID
}

func TestSettingsBootstrap(t *testing.T) {
	svc, userID := newTestSettings(t)
	ctx := context.Background()

	t.Run("first access creates defaults", func(t *testing.T) {
		b, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)

		require.Equal(t, "light", b.App.Theme)
		require.Equal(t, "en", b.App.Language)
		require.Equal(t, "09:00", b.App.ActiveFrom)
		require.Equal(t, "17:00", b.App.ActiveTo)
		require.False(t, b.App.Paused)

		require.True(t, b.Breaks.Enabled)
		require.Equal(t, 60, b.Breaks.FrequencyMinutes)
		require.Equal(t, 5, b.Breaks.DurationMinutes)
		require.True(t, b.Breaks.SoundOn)

		require.Equal(t, FallbackPalette, b.Colors.Palette)
		require.InDelta(t, 0.35, b.Colors.Opacity, 1e-9)

		require.Equal(t, 50, b.Sounds.Volume)
		require.False(t, b.Sounds.Muted)
	})

	t.Run("second access reads the same bundle", func(t *testing.T) {
		first, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		second, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestSettingsBootstrapConcurrent(t *testing.T) {
	svc, userID := newTestSettings(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	bundles := make([]domain.SettingsBundle, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bundles[i], errs[i] = svc.GetOrCreate(ctx, userID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, bundles[0].ID, bundles[i].ID)
		require.Equal(t, bundles[0].App, bundles[i].App)
	}
}

func TestSettingsPartitionUpdate(t *testing.T) {
	svc, userID := newTestSettings(t)
	ctx := context.Background()

	t.Run("update persists", func(t *testing.T) {
		next := domain.BreakSettings{
			UserID:           userID,
			Enabled:          true,
			FrequencyMinutes: 25,
			DurationMinutes:  3,
			SoundOn:          false,
		}
		got, err := svc.UpdateBreaks(ctx, next)
		require.NoError(t, err)
		require.Equal(t, next, got)

		read, err := svc.GetBreaks(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, next, read)
	})

	t.Run("update bootstraps the rest of the bundle", func(t *testing.T) {
		app, err := svc.GetApp(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "light", app.Theme)
	})
}

func TestUserColorList(t *testing.T) {
	svc, userID := newTestSettings(t)
	ctx := context.Background()

	colors, err := svc.UserColorList(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, FallbackPalette, colors)

	// Stable across calls.
	again, err := svc.UserColorList(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, colors, again)
}
