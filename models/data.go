package models

import "time"

// VaultItem represents a single vault entry as the server stores it.
// Title, data and notes are encrypted client-side and opaque to the database;
// only the type, URL and favorite flag are stored in clear for filtering.
type VaultItem struct {
	// ID is the UUIDv7 identifier of the item.
	ID string `json:"id"`

	// UserID is the owner of this item.
	UserID string `json:"-"`

	// Type defines how the decrypted Data must be interpreted.
	Type ItemType `json:"item_type"`

	// Title holds the encrypted display name.
	Title EncryptedField `json:"title_encrypted"`

	// Data holds the encrypted JSON of the type specific payload.
	Data EncryptedField `json:"data_encrypted"`

	// Notes holds optional encrypted free text.
	Notes *EncryptedField `json:"notes_encrypted,omitempty"`

	// URL is stored in clear so the item can be matched to a site.
	URL *string `json:"url,omitempty"`

	IsFavorite bool `json:"is_favorite"`

	// CategoryID is nil for uncategorised items.
	CategoryID *string `json:"category_id,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastUsed  *time.Time `json:"last_used,omitempty"`

	// DeletedAt marks a soft-deleted item.
	DeletedAt *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the VaultItem model.
func (v VaultItem) TableName() string {
	return "vault_items"
}

// VaultItemFilter selects items of one user. Only unencrypted columns can be
// used for filtering.
type VaultItemFilter struct {
	UserID        string
	Type          *ItemType
	CategoryID    *string
	FavoritesOnly bool
}

// VaultItemUpdate is a partial update. Only non-nil fields are written.
type VaultItemUpdate struct {
	ID         string
	UserID     string
	Type       *ItemType
	Title      *EncryptedField
	Data       *EncryptedField
	Notes      *EncryptedField
	URL        *string
	IsFavorite *bool

	// CategoryID "" clears the category, as Notes "" clears the notes.
	CategoryID *string
}

// IsEmpty reports whether the update would change nothing.
func (u VaultItemUpdate) IsEmpty() bool {
	return u.Type == nil && u.Title == nil && u.Data == nil &&
		u.Notes == nil && u.URL == nil && u.IsFavorite == nil && u.CategoryID == nil
}

// PasswordHistoryEntry keeps a previous encrypted payload of an item.
type PasswordHistoryEntry struct {
	ID        string         `json:"id"`
	ItemID    string         `json:"item_id"`
	Data      EncryptedField `json:"password_encrypted"`
	CreatedAt time.Time      `json:"created_at"`
}

// PasswordHistoryLimit is the number of history entries returned per item.
const PasswordHistoryLimit = 10
