package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
)

// CommitStore defines an interface for database operations
type CommitStore interface {
	SaveCommits(ctx context.Context, commits []domain.Commit) ([]domain.Commit, error)
	CommitByHash(ctx context.Context, hash string) (*domain.Commit, error)
	CommitsByRepository(ctx context.Context, url string) ([]domain.Commit, error)
	AllCommits(ctx context.Context) ([]domain.Commit, error)
	DeleteCommitsByRepository(ctx context.Context, url string) (int64, error)
}
