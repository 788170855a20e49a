package domain

import "time"

// Bookmarks holds a user's ordered content id list. One row per user.
type Bookmarks struct {
	UserID     string
	ContentIDs []string
}

// ScreenTime is one user's screen time for one calendar date, as a map from
// time-bucket label (e.g. "09:00") to minutes.
type ScreenTime struct {
	ID      string
	UserID  string
	Date    string // "YYYY-MM-DD"
	Buckets map[string]int
}

// UserImprovement anchors a user's break-event history.
type UserImprovement struct {
	ID     string
	UserID string
}

// Improvement records one completed (or abandoned) break event.
type Improvement struct {
	ID                string
	UserImprovementID string
	ContentIDs        []string
	Completed         bool
	Device            string
	Rating            int
	CreatedAt         time.Time
}

// UserColors is the per-user color palette served to the extension.
type UserColors struct {
	UserID string
	Colors []string
}

// Device records one device/browser the extension reported for a user.
type Device struct {
	ID         string
	UserID     string
	DeviceType string
	Browser    string
	OS         string
	CreatedAt  time.Time
}
