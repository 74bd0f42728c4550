package mysql

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error to the domain sentinel; other errors pass through.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
