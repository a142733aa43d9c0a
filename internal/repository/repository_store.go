package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
)

// RepositoryStore defines an interface for database operations
type RepositoryStore interface {
	SaveRepository(ctx context.Context, repository domain.Repository) (*domain.Repository, error)
	RepositoryByID(ctx context.Context, id string) (*domain.Repository, error)
	RepositoryByURL(ctx context.Context, url string) (*domain.Repository, error)
	AllRepositories(ctx context.Context) ([]domain.Repository, error)
	DeleteRepository(ctx context.Context, id string) (*domain.Repository, error)
	CountRepositories(ctx context.Context) (int64, error)
}
