package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// handleDBError wraps a database failure with the operation name while
// keeping the underlying error inspectable with errors.Is.
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", operation, gorm.ErrRecordNotFound)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
