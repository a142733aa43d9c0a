package mocks

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// CommitStore mock
type CommitStore struct {
	mock.Mock
}

func (m *CommitStore) SaveCommits(ctx context.Context, commits []domain.Commit) ([]domain.Commit, error) {
	args := m.Called(ctx, commits)
	saved, _ := args.Get(0).([]domain.Commit)
	return saved, args.Error(1)
}

func (m *CommitStore) CommitByHash(ctx context.Context, hash string) (*domain.Commit, error) {
	args := m.Called(ctx, hash)
	commit, _ := args.Get(0).(*domain.Commit)
	return commit, args.Error(1)
}

func (m *CommitStore) CommitsByRepository(ctx context.Context, url string) ([]domain.Commit, error) {
	args := m.Called(ctx, url)
	commits, _ := args.Get(0).([]domain.Commit)
	return commits, args.Error(1)
}

func (m *CommitStore) AllCommits(ctx context.Context) ([]domain.Commit, error) {
	args := m.Called(ctx)
	commits, _ := args.Get(0).([]domain.Commit)
	return commits, args.Error(1)
}

func (m *CommitStore) DeleteCommitsByRepository(ctx context.Context, url string) (int64, error) {
	args := m.Called(ctx, url)
	return args.Get(0).(int64), args.Error(1)
}
