package models

import "time"

// DecryptedItem is a vault item after client-side decryption.
//
// When any encrypted field of the record fails to decrypt, Err is set and
// the secret fields are left empty. One bad record never hides the rest of
// a listing.
type DecryptedItem struct {
	ID         string
	Type       ItemType
	Title      string
	Payload    ItemPayload
	Notes      string
	URL        string
	IsFavorite bool
	UpdatedAt  time.Time

	Err error
}

// Failed reports whether the record could not be decrypted.
func (d DecryptedItem) Failed() bool {
	return d.Err != nil
}

// NewItem is the plaintext form of a vault item before encryption.
type NewItem struct {
	Title      string
	Payload    ItemPayload
	Notes      string
	URL        string
	IsFavorite bool
}
