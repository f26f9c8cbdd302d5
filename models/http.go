package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	MasterPassword  string `json:"masterPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email          string `json:"email"`
	MasterPassword string `json:"masterPassword"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// VaultItemRequest is the body of POST /api/vault/items.
// Every encrypted field must already be an envelope produced by the client.
type VaultItemRequest struct {
	Type       ItemType        `json:"item_type"`
	Title      EncryptedField  `json:"title_encrypted"`
	Data       EncryptedField  `json:"data_encrypted"`
	Notes      *EncryptedField `json:"notes_encrypted,omitempty"`
	URL        *string         `json:"url,omitempty"`
	IsFavorite bool            `json:"is_favorite"`
	CategoryID *string         `json:"category_id,omitempty"`
}

// VaultItemPatch is the body of PUT /api/vault/items/{id}.
// Only non-nil fields are updated (partial update support).
type VaultItemPatch struct {
	Type       *ItemType       `json:"item_type,omitempty"`
	Title      *EncryptedField `json:"title_encrypted,omitempty"`
	Data       *EncryptedField `json:"data_encrypted,omitempty"`
	Notes      *EncryptedField `json:"notes_encrypted,omitempty"`
	URL        *string         `json:"url,omitempty"`
	IsFavorite *bool           `json:"is_favorite,omitempty"`

	// CategoryID moves the item; an empty string removes it from its
	// category.
	CategoryID *string `json:"category_id,omitempty"`
}

// GeneratePasswordRequest is the body of POST /api/vault/generate-password.
// Zero length means the default length. Nil class flags default to true.
type GeneratePasswordRequest struct {
	Length    int   `json:"length"`
	Uppercase *bool `json:"uppercase,omitempty"`
	Lowercase *bool `json:"lowercase,omitempty"`
	Numbers   *bool `json:"numbers,omitempty"`
	Symbols   *bool `json:"symbols,omitempty"`
}

// CategoryRequest is the body of POST /api/vault/categories. Empty icon and
// color select the defaults.
type CategoryRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// DeleteAccountRequest is the body of DELETE /api/settings/account.
type DeleteAccountRequest struct {
	ConfirmPassword string `json:"confirmPassword"`
}
