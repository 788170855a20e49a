package sqlite

import (
	"context"

	"github.com/breathehq/breathe/internal/api/domain"
)

type settingsRepo struct {
	q dbtx
}

func (r *settingsRepo) GetBundleByUserID(ctx context.Context, userID string) (domain.SettingsBundle, error) {
	var b domain.SettingsBundle
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id FROM extension_settings WHERE user_id = ?`, userID).
		Scan(&b.ID, &b.UserID)
	if err != nil {
		return domain.SettingsBundle{}, mapNotFound(err)
	}

	// Bundle invariant: parent row implies all four partitions exist, so
	// these reads only fail on real database errors.
	err = r.q.QueryRowContext(ctx,
		`SELECT theme, language, active_from, active_to, paused FROM app_settings WHERE user_id = ?`, userID).
		Scan(&b.App.Theme, &b.App.Language, &b.App.ActiveFrom, &b.App.ActiveTo, &b.App.Paused)
	if err != nil {
		return domain.SettingsBundle{}, mapNotFound(err)
	}
	b.App.UserID = userID

	err = r.q.QueryRowContext(ctx,
		`SELECT enabled, frequency_minutes, duration_minutes, sound_on FROM break_settings WHERE user_id = ?`, userID).
		Scan(&b.Breaks.Enabled, &b.Breaks.FrequencyMinutes, &b.Breaks.DurationMinutes, &b.Breaks.SoundOn)
	if err != nil {
		return domain.SettingsBundle{}, mapNotFound(err)
	}
	b.Breaks.UserID = userID

	var palette string
	err = r.q.QueryRowContext(ctx,
		`SELECT enabled, palette, opacity FROM colors_settings WHERE user_id = ?`, userID).
		Scan(&b.Colors.Enabled, &palette, &b.Colors.Opacity)
	if err != nil {
		return domain.SettingsBundle{}, mapNotFound(err)
	}
	b.Colors.UserID = userID
	b.Colors.Palette = decodeStrings(palette)

	err = r.q.QueryRowContext(ctx,
		`SELECT enabled, volume, muted FROM sound_settings WHERE user_id = ?`, userID).
		Scan(&b.Sounds.Enabled, &b.Sounds.Volume, &b.Sounds.Muted)
	if err != nil {
		return domain.SettingsBundle{}, mapNotFound(err)
	}
	b.Sounds.UserID = userID

	return b, nil
}

func (r *settingsRepo) CreateBundle(ctx context.Context, b domain.SettingsBundle) error {
	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO extension_settings (id, user_id) VALUES (?, ?)`,
		b.ID, b.UserID); err != nil {
		return mapConstraint(err)
	}

	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO app_settings (user_id, theme, language, active_from, active_to, paused)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserID, b.App.Theme, b.App.Language, b.App.ActiveFrom, b.App.ActiveTo, b.App.Paused); err != nil {
		return mapConstraint(err)
	}

	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO break_settings (user_id, enabled, frequency_minutes, duration_minutes, sound_on)
		VALUES (?, ?, ?, ?, ?)`,
		b.UserID, b.Breaks.Enabled, b.Breaks.FrequencyMinutes, b.Breaks.DurationMinutes, b.Breaks.SoundOn); err != nil {
		return mapConstraint(err)
	}

	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO colors_settings (user_id, enabled, palette, opacity)
		VALUES (?, ?, ?, ?)`,
		b.UserID, b.Colors.Enabled, encodeStrings(b.Colors.Palette), b.Colors.Opacity); err != nil {
		return mapConstraint(err)
	}

	if _, err := r.q.ExecContext(ctx, `
		INSERT INTO sound_settings (user_id, enabled, volume, muted)
		VALUES (?, ?, ?, ?)`,
		b.UserID, b.Sounds.Enabled, b.Sounds.Volume, b.Sounds.Muted); err != nil {
		return mapConstraint(err)
	}

	return nil
}

func (r *settingsRepo) UpdateAppSettings(ctx context.Context, s domain.AppSettings) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE app_settings SET theme = ?, language = ?, active_from = ?, active_to = ?, paused = ?
		WHERE user_id = ?`,
		s.Theme, s.Language, s.ActiveFrom, s.ActiveTo, s.Paused, s.UserID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *settingsRepo) UpdateBreakSettings(ctx context.Context, s domain.BreakSettings) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE break_settings SET enabled = ?, frequency_minutes = ?, duration_minutes = ?, sound_on = ?
		WHERE user_id = ?`,
		s.Enabled, s.FrequencyMinutes, s.DurationMinutes, s.SoundOn, s.UserID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *settingsRepo) UpdateColorsSettings(ctx context.Context, s domain.ColorsSettings) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE colors_settings SET enabled = ?, palette = ?, opacity = ?
		WHERE user_id = ?`,
		s.Enabled, encodeStrings(s.Palette), s.Opacity, s.UserID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *settingsRepo) UpdateSoundSettings(ctx context.Context, s domain.SoundSettings) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE sound_settings SET enabled = ?, volume = ?, muted = ?
		WHERE user_id = ?`,
		s.Enabled, s.Volume, s.Muted, s.UserID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
