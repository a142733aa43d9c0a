package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
)

// EmailStore defines an interface for database operations
type EmailStore interface {
	SaveEmail(ctx context.Context, email domain.Email) (*domain.Email, error)
	EmailByAddress(ctx context.Context, address string) (*domain.Email, error)
	AllEmails(ctx context.Context) ([]domain.Email, error)
}
