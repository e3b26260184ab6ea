package port

import "time"

// SettingsStore is the durable settings record shared by all handlers.
type SettingsStore interface {
	SendCount() int64
	// IncrementSendCount adds one to the counter and persists the settings before returning the new value.
	IncrementSendCount() (int64, error)
	Admins() []int64
	IsAdmin(chatID int64) bool
	StartDate() (time.Time, error)
	AnimationPath() string
	ImagePath() string
	// Save flushes the in-memory settings to disk, keeping keys it does not know about.
	Save() error
}
