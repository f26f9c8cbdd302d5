package models

// EncryptedField is a string of the form "<32 hex IV>:<hex ciphertext>".
// The actual structure and meaning of the data are unknown to the server
// and to the database.
type EncryptedField string

// String implements [fmt.Stringer].
func (f EncryptedField) String() string {
	return string(f)
}
