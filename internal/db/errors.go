package db

import (
	"errors"

	"gorm.io/gorm"
)

// IsDuplicate reports whether err is a unique-constraint violation.
// Requires the connection to be opened with TranslateError.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
