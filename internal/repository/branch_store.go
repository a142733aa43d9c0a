package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
)

// BranchStore defines an interface for database operations
type BranchStore interface {
	SaveBranch(ctx context.Context, branch domain.Branch) (*domain.Branch, error)
	BranchByID(ctx context.Context, id string) (*domain.Branch, error)
	BranchesByRepository(ctx context.Context, repositoryID string) ([]domain.Branch, error)
	AllBranches(ctx context.Context) ([]domain.Branch, error)
	DeleteBranch(ctx context.Context, id string) (*domain.Branch, error)
}
