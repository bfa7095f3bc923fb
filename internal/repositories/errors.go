package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether the error chain contains a missing
// record failure.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether the error chain contains a unique
// constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
