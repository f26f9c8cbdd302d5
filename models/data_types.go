package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ItemType defines the semantic type of a vault item and therefore the
// shape of its decrypted payload.
type ItemType string

const (
	// ItemPassword represents website or application credentials.
	ItemPassword ItemType = "password"

	// ItemNote represents a free-form secure note.
	ItemNote ItemType = "note"

	// ItemCard represents payment card information.
	ItemCard ItemType = "card"

	// ItemIdentity represents personal identity details.
	ItemIdentity ItemType = "identity"
)

// ErrUnknownItemType is returned for an item type outside the known set.
var ErrUnknownItemType = errors.New("unknown item type")

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemPassword, ItemNote, ItemCard, ItemIdentity:
		return true
	}
	return false
}

// ItemPayload is the decrypted, type specific content of a vault item.
// Exactly one concrete type exists per [ItemType].
type ItemPayload interface {
	ItemType() ItemType
}

// PasswordData represents decrypted login credentials.
type PasswordData struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// TOTP contains an optional time-based one-time password seed.
	TOTP string `json:"totp,omitempty"`
}

// ItemType implements [ItemPayload].
func (PasswordData) ItemType() ItemType { return ItemPassword }

// NoteData represents a secure note.
type NoteData struct {
	Content string `json:"content"`
}

// ItemType implements [ItemPayload].
func (NoteData) ItemType() ItemType { return ItemNote }

// CardData represents decrypted payment card information.
// All fields are considered highly sensitive.
type CardData struct {
	CardholderName string `json:"cardholderName"`
	Number         string `json:"number"`
	Brand          string `json:"brand,omitempty"`
	ExpMonth       string `json:"expMonth"`
	ExpYear        string `json:"expYear"`
	Code           string `json:"code"`
}

// ItemType implements [ItemPayload].
func (CardData) ItemType() ItemType { return ItemCard }

// IdentityData represents personal details used to fill forms.
type IdentityData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Passport  string `json:"passport,omitempty"`
}

// ItemType implements [ItemPayload].
func (IdentityData) ItemType() ItemType { return ItemIdentity }

// MarshalPayload serializes p to the JSON that gets encrypted into
// [VaultItem.Data].
func MarshalPayload(p ItemPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("marshal payload: %w", ErrUnknownItemType)
	}
	return json.Marshal(p)
}

// UnmarshalPayload decodes decrypted JSON according to the item type stored
// next to it.
func UnmarshalPayload(t ItemType, data []byte) (ItemPayload, error) {
	var (
		p   ItemPayload
		err error
	)
	switch t {
	case ItemPassword:
		var v PasswordData
		err = json.Unmarshal(data, &v)
		p = v
	case ItemNote:
		var v NoteData
		err = json.Unmarshal(data, &v)
		p = v
	case ItemCard:
		var v CardData
		err = json.Unmarshal(data, &v)
		p = v
	case ItemIdentity:
		var v IdentityData
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItemType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}
