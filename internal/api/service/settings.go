package service

import (
	"context"
	"errors"

	"github.com/breathehq/breathe/internal/api/domain"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/pkg/idx"
)

// FallbackPalette is the stock color rotation handed to every user until
// they pick their own.
var FallbackPalette = []string{"#EBCF6B", "#B9AD8C", "#F1812E", "#E7595B", "#90CCE5", "#F4BDF0"}

func defaultBundle(userID string) domain.SettingsBundle {
	return domain.SettingsBundle{
		ID:     idx.New().String(),
		UserID: userID,
		App: domain.AppSettings{
			UserID:     userID,
			Theme:      "light",
			Language:   "en",
			ActiveFrom: "09:00",
			ActiveTo:   "17:00",
		},
		Breaks: domain.BreakSettings{
			UserID:           userID,
			Enabled:          true,
			FrequencyMinutes: 60,
			DurationMinutes:  5,
			SoundOn:          true,
		},
		Colors: domain.ColorsSettings{
			UserID:  userID,
			Enabled: true,
			Palette: append([]string(nil), FallbackPalette...),
			Opacity: 0.35,
		},
		Sounds: domain.SoundSettings{
			UserID:  userID,
			Enabled: true,
			Volume:  50,
		},
	}
}

type SettingsService struct {
	Store store.Store
}

// GetOrCreate returns the user's settings bundle, creating it from defaults
// on first access. Concurrent first access is safe: the loser of the insert
// race re-reads the winner's rows instead of surfacing a duplicate error.
func (s *SettingsService) GetOrCreate(ctx context.Context, userID string) (domain.SettingsBundle, error) {
	var bundle domain.SettingsBundle

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		b, err := tx.Settings().GetBundleByUserID(ctx, userID)
		if err == nil {
			bundle = b
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		bundle = defaultBundle(userID)
		return tx.Settings().CreateBundle(ctx, bundle)
	})

	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a bootstrap race; the other writer's bundle is the truth.
		return s.Store.Settings().GetBundleByUserID(ctx, userID)
	}
	if err != nil {
		return domain.SettingsBundle{}, err
	}
	return bundle, nil
}

func (s *SettingsService) GetApp(ctx context.Context, userID string) (domain.AppSettings, error) {
	b, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.AppSettings{}, err
	}
	return b.App, nil
}

func (s *SettingsService) UpdateApp(ctx context.Context, in domain.AppSettings) (domain.AppSettings, error) {
	if _, err := s.GetOrCreate(ctx, in.UserID); err != nil {
		return domain.AppSettings{}, err
	}
	if err := s.Store.Settings().UpdateAppSettings(ctx, in); err != nil {
		return domain.AppSettings{}, err
	}
	return in, nil
}

func (s *SettingsService) GetBreaks(ctx context.Context, userID string) (domain.BreakSettings, error) {
	b, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.BreakSettings{}, err
	}
	return b.Breaks, nil
}

func (s *SettingsService) UpdateBreaks(ctx context.Context, in domain.BreakSettings) (domain.BreakSettings, error) {
	if _, err := s.GetOrCreate(ctx, in.UserID); err != nil {
		return domain.BreakSettings{}, err
	}
	if err := s.Store.Settings().UpdateBreakSettings(ctx, in); err != nil {
		return domain.BreakSettings{}, err
	}
	return in, nil
}

func (s *SettingsService) GetColors(ctx context.Context, userID string) (domain.ColorsSettings, error) {
	b, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.ColorsSettings{}, err
	}
	return b.Colors, nil
}

func (s *SettingsService) UpdateColors(ctx context.Context, in domain.ColorsSettings) (domain.ColorsSettings, error) {
	if _, err := s.GetOrCreate(ctx, in.UserID); err != nil {
		return domain.ColorsSettings{}, err
	}
	if err := s.Store.Settings().UpdateColorsSettings(ctx, in); err != nil {
		return domain.ColorsSettings{}, err
	}
	return in, nil
}

func (s *SettingsService) GetSounds(ctx context.Context, userID string) (domain.SoundSettings, error) {
	b, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.SoundSettings{}, err
	}
	return b.Sounds, nil
}

func (s *SettingsService) UpdateSounds(ctx context.Context, in domain.SoundSettings) (domain.SoundSettings, error) {
	if _, err := s.GetOrCreate(ctx, in.UserID); err != nil {
		return domain.SoundSettings{}, err
	}
	if err := s.Store.Settings().UpdateSoundSettings(ctx, in); err != nil {
		return domain.SoundSettings{}, err
	}
	return in, nil
}

// UserColorList returns the user's color rotation, seeding it from the
// fallback palette on first access.
func (s *SettingsService) UserColorList(ctx context.Context, userID string) ([]string, error) {
	uc, err := s.Store.UserColors().GetUserColors(ctx, userID)
	if err == nil {
		return uc.Colors, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	uc = domain.UserColors{UserID: userID, Colors: append([]string(nil), FallbackPalette...)}
	if err := s.Store.UserColors().CreateUserColors(ctx, uc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			winner, rerr := s.Store.UserColors().GetUserColors(ctx, userID)
			if rerr != nil {
				return nil, rerr
			}
			return winner.Colors, nil
		}
		return nil, err
	}
	return uc.Colors, nil
}
