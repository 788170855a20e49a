package domain

// SettingsBundle aggregates the four per-user extension settings partitions.
// Invariant: whenever the bundle exists, all four partitions exist.
type SettingsBundle struct {
	ID     string
	UserID string
	App    AppSettings
	Breaks BreakSettings
	Colors ColorsSettings
	Sounds SoundSettings
}

type AppSettings struct {
	UserID     string `json:"-"`
	Theme      string `json:"theme"`
	Language   string `json:"language"`
	ActiveFrom string `json:"activeFrom"` // "HH:MM"
	ActiveTo   string `json:"activeTo"`   // "HH:MM"
	Paused     bool   `json:"paused"`
}

type BreakSettings struct {
	UserID           string `json:"-"`
	Enabled          bool   `json:"enabled"`
	FrequencyMinutes int    `json:"frequencyMinutes"`
	DurationMinutes  int    `json:"durationMinutes"`
	SoundOn          bool   `json:"soundOn"`
}

type ColorsSettings struct {
	UserID  string   `json:"-"`
	Enabled bool     `json:"enabled"`
	Palette []string `json:"palette"`
	Opacity float64  `json:"opacity"`
}

type SoundSettings struct {
	UserID  string `json:"-"`
	Enabled bool   `json:"enabled"`
	Volume  int    `json:"volume"` // 0-100
	Muted   bool   `json:"muted"`
}
