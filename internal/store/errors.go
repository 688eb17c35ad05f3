package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

const pgUniqueViolation = "23505"

// DataStoreError wraps any statement failure that is not one of the sentinels
// above. Op names the data-access operation that failed.
type DataStoreError struct {
	Op  string
	Err error
}

func (e *DataStoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *DataStoreError) Unwrap() error { return e.Err }

// translate maps driver/gorm errors onto the store's sentinels.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicateKey)
	}
	return &DataStoreError{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite surfaces constraint failures as message text.
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
