// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Themes accepted in [Preferences].
const (
	ThemeDark   = "dark"
	ThemeLight  = "light"
	ThemeSystem = "system"
)

// PasswordOptions are the generator defaults a user prefers.
type PasswordOptions struct {
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// Preferences are per-user client settings. The server stores them as a
// JSON document and never interprets them beyond validation.
type Preferences struct {
	Theme string `json:"theme"`

	// AutoLockTimeout is in minutes, ClipboardTimeout in seconds. Zero
	// disables the timer.
	AutoLockTimeout  int `json:"autoLockTimeout"`
	ClipboardTimeout int `json:"clipboardTimeout"`

	ShowPasswordStrength   bool            `json:"showPasswordStrength"`
	DefaultPasswordLength  int             `json:"defaultPasswordLength"`
	DefaultPasswordOptions PasswordOptions `json:"defaultPasswordOptions"`
	BiometricEnabled       bool            `json:"biometricEnabled"`
	CompactView            bool            `json:"compactView"`
}

// DefaultPreferences is returned for a user who never saved preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:                 ThemeDark,
		AutoLockTimeout:       5,
		ClipboardTimeout:      30,
		ShowPasswordStrength:  true,
		DefaultPasswordLength: 16,
		DefaultPasswordOptions: PasswordOptions{
			Uppercase: true,
			Lowercase: true,
			Numbers:   true,
			Symbols:   true,
		},
	}
}

// TypeCount is the number of live items of one type.
type TypeCount struct {
	Type  ItemType `json:"type"`
	Count int      `json:"count"`
}

// CategoryCount is the number of live items in one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ActionCount is the number of audit events of one action.
type ActionCount struct {
	Action AuditAction `json:"action"`
	Count  int         `json:"count"`
}

// AuditLogPage is one page of a user's audit log, newest first.
type AuditLogPage struct {
	Logs  []AuditEvent `json:"logs"`
	Total int          `json:"total"`
}

// AuditLogQuery selects a page of the audit log.
type AuditLogQuery struct {
	UserID string
	Limit  int
	Offset int
}

// Default and maximum page sizes of the audit log.
const (
	DefaultAuditLogLimit = 50
	MaxAuditLogLimit     = 200
)

// StatsWindowDays is how far back recent activity is counted.
const StatsWindowDays = 7

// VaultStats summarises a user's vault and recent account activity.
type VaultStats struct {
	TotalItems      int             `json:"totalItems"`
	ItemsByType     []TypeCount     `json:"itemsByType"`
	ItemsByCategory []CategoryCount `json:"itemsByCategory"`
	RecentActivity  []ActionCount   `json:"recentActivity"`
}
