package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry is matched by every unique constraint violation reported by the store.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// DuplicateEntryError reports a unique constraint violation. Column names the
// constrained column when it could be recovered from the driver message.
type DuplicateEntryError struct {
	Column string
	Err    error
}

func (e *DuplicateEntryError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("duplicate entry: %v", e.Err)
	}
	return fmt.Sprintf("duplicate entry for %s: %v", e.Column, e.Err)
}

// Is makes errors.Is(err, ErrDuplicateEntry) hold for every DuplicateEntryError.
func (e *DuplicateEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

func (e *DuplicateEntryError) Unwrap() error {
	return e.Err
}

// isDuplicateEntryError recognises unique violations from the drivers we run on.
func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") || // postgres
		strings.Contains(msg, "Duplicate entry") // mysql
}

// translateWriteError turns a unique violation into a *DuplicateEntryError. The
// candidate columns are matched in order against the driver message, which carries
// either the column (sqlite) or the index name (postgres).
func translateWriteError(err error, columns ...string) error {
	if err == nil || !isDuplicateEntryError(err) {
		return err
	}
	msg := err.Error()
	for _, col := range columns {
		if strings.Contains(msg, col) {
			return &DuplicateEntryError{Column: col, Err: err}
		}
	}
	return &DuplicateEntryError{Err: err}
}

// translateReadError maps gorm.ErrRecordNotFound to ErrNotFound.
func translateReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// conn returns the transaction when one is given and the base handle otherwise.
func conn(db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}
