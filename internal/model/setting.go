package model

import "time"

// SystemSetting represents a key/value row in the system_setting table.
// Provider API keys are stored here fernet-encrypted.
type SystemSetting struct {
	ID        string
	Key       string
	Value     string
	UpdatedAt time.Time
}
