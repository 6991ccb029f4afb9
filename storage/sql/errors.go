package sqlstore

import "errors"

var (
	// ErrEmailTooLong indicates a proposal email that does not fit the
	// three email columns.
	ErrEmailTooLong = errors.New("proposal email too long")

	// ErrUnsupportedDriver indicates a driver name other than sqlite or postgres.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)
