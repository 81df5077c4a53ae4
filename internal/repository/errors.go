package repository

import (
	"errors"

	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// IsBusy reports whether err is sqlite telling us the database (or a table)
// is locked by another writer. Callers treat this as retryable contention.
func IsBusy(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code() & 0xff
	return code == sqlite3lib.SQLITE_BUSY || code == sqlite3lib.SQLITE_LOCKED
}

// IsConstraint reports whether err is a sqlite constraint violation.
func IsConstraint(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
}
