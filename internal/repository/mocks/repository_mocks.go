package mocks

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// RepositoryStore mock
type RepositoryStore struct {
	mock.Mock
}

func (m *RepositoryStore) SaveRepository(ctx context.Context, repository domain.Repository) (*domain.Repository, error) {
	args := m.Called(ctx, repository)
	return repoArg(args, 0), args.Error(1)
}

func (m *RepositoryStore) RepositoryByID(ctx context.Context, id string) (*domain.Repository, error) {
	args := m.Called(ctx, id)
	return repoArg(args, 0), args.Error(1)
}

func (m *RepositoryStore) RepositoryByURL(ctx context.Context, url string) (*domain.Repository, error) {
	args := m.Called(ctx, url)
	return repoArg(args, 0), args.Error(1)
}

func (m *RepositoryStore) AllRepositories(ctx context.Context) ([]domain.Repository, error) {
	args := m.Called(ctx)
	repos, _ := args.Get(0).([]domain.Repository)
	return repos, args.Error(1)
}

func (m *RepositoryStore) DeleteRepository(ctx context.Context, id string) (*domain.Repository, error) {
	args := m.Called(ctx, id)
	return repoArg(args, 0), args.Error(1)
}

func (m *RepositoryStore) CountRepositories(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func repoArg(args mock.Arguments, i int) *domain.Repository {
	repo, _ := args.Get(i).(*domain.Repository)
	return repo
}
