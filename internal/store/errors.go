package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when a user with the same email
	// already exists.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a lookup by email or id matches no
	// user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when a session row does not exist or
	// its token hash does not match.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrVaultItemNotFound is returned when an item does not exist, belongs
	// to another user or is soft-deleted.
	ErrVaultItemNotFound = errors.New("vault item was not found")

	// ErrCategoryNotFound is returned when a category does not exist or
	// belongs to another user.
	ErrCategoryNotFound = errors.New("category was not found")

	// ErrNothingToUpdate is returned for an update that sets no column.
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUnsupportedDSN is returned when the DSN scheme selects no driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid result set.
	ErrScanningRows = errors.New("failed to scan rows")
)
