package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail          = errors.New("invalid email address")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong       = errors.New("password is too long")
	ErrPasswordRequired      = errors.New("password is required")
	ErrPasswordsDoNotMatch   = errors.New("passwords do not match")
	ErrInvalidItemType       = errors.New("invalid item type")
	ErrInvalidEncryptedField = errors.New("invalid encrypted field")
	ErrEmptyTitle            = errors.New("title is required")
	ErrEmptyData             = errors.New("data is required")
	ErrURLTooLong            = errors.New("url is too long")
	ErrNoFieldsToUpdate      = errors.New("at least one field must be provided for update")
	ErrInvalidLength         = errors.New("invalid password length")
	ErrInvalidCategoryID     = errors.New("invalid category id")
	ErrEmptyCategoryName     = errors.New("category name is required")
	ErrCategoryNameTooLong   = errors.New("category name is too long")
	ErrInvalidCategoryIcon   = errors.New("invalid category icon")
	ErrInvalidCategoryColor  = errors.New("category color must be #rrggbb")
	ErrInvalidTheme          = errors.New("invalid theme")
	ErrInvalidTimeout        = errors.New("timeout is out of range")
	ErrInvalidPageBounds     = errors.New("limit and offset must not be negative")
)
