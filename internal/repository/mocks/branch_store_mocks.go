package mocks

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// BranchStore mock
type BranchStore struct {
	mock.Mock
}

func (m *BranchStore) SaveBranch(ctx context.Context, branch domain.Branch) (*domain.Branch, error) {
	args := m.Called(ctx, branch)
	saved, _ := args.Get(0).(*domain.Branch)
	return saved, args.Error(1)
}

func (m *BranchStore) BranchByID(ctx context.Context, id string) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	branch, _ := args.Get(0).(*domain.Branch)
	return branch, args.Error(1)
}

func (m *BranchStore) BranchesByRepository(ctx context.Context, repositoryID string) ([]domain.Branch, error) {
	args := m.Called(ctx, repositoryID)
	branches, _ := args.Get(0).([]domain.Branch)
	return branches, args.Error(1)
}

func (m *BranchStore) AllBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	branches, _ := args.Get(0).([]domain.Branch)
	return branches, args.Error(1)
}

func (m *BranchStore) DeleteBranch(ctx context.Context, id string) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	branch, _ := args.Get(0).(*domain.Branch)
	return branch, args.Error(1)
}
