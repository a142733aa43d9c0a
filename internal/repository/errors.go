package repository

import (
	"context"
	"strings"

	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// storeError maps driver errors onto the errcodes sentinels and annotates
// everything else with the failing operation.
func storeError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errcodes.ErrNoRecordFound
	case errors.Is(err, context.Canceled):
		return errcodes.ErrContextCancelled
	case isDuplicate(err):
		return errors.Wrap(errcodes.ErrDuplicate, op)
	default:
		return errors.Wrap(err, op)
	}
}

// isDuplicate also matches raw driver messages for connections opened
// without TranslateError.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
