package mocks

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// GitClient mock
type GitClient struct {
	mock.Mock
}

func (m *GitClient) Extract(ctx context.Context, canonicalID, branch string) ([]domain.Commit, error) {
	args := m.Called(ctx, canonicalID, branch)
	commits, _ := args.Get(0).([]domain.Commit)
	return commits, args.Error(1)
}
