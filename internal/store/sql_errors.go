package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells a repository how to translate a driver error.
type ErrorClassification int

const (
	// Unclassified errors are wrapped and returned as is.
	Unclassified ErrorClassification = iota

	// UniqueViolation means an INSERT or UPDATE hit a unique constraint.
	UniqueViolation

	// ForeignKeyViolation means a referenced row does not exist.
	ForeignKeyViolation
)

// ClassifyError maps PostgreSQL and SQLite driver errors to a common
// [ErrorClassification]. A nil or unknown error is [Unclassified].
func ClassifyError(err error) ErrorClassification {
	if err == nil {
		return Unclassified
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgError(pgErr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLiteError(liteErr)
	}

	return Unclassified
}

// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	}
	return Unclassified
}

func classifySQLiteError(liteErr sqlite3.Error) ErrorClassification {
	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return UniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		return ForeignKeyViolation
	}
	return Unclassified
}
