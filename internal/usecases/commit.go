package usecases

import (
	"context"
	"fmt"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/pkg/errcodes"
)

type GitCommitUsecase interface {
	GetAll(ctx context.Context) ([]domain.Commit, error)
	GetByHash(ctx context.Context, hash string) (*domain.Commit, error)
	GetAllCommitsByRepository(ctx context.Context, repoID string) ([]domain.Commit, error)
}

type gitCommitUsecase struct {
	commitStore     repository.CommitStore
	repositoryStore repository.RepositoryStore
}

func NewGitCommitUsecase(commitStore repository.CommitStore, repositoryStore repository.RepositoryStore) GitCommitUsecase {
	return &gitCommitUsecase{
		commitStore:     commitStore,
		repositoryStore: repositoryStore,
	}
}

func (u *gitCommitUsecase) GetAll(ctx context.Context) ([]domain.Commit, error) {
	commits, err := u.commitStore.AllCommits(ctx)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return commits, nil
}

func (u *gitCommitUsecase) GetByHash(ctx context.Context, hash string) (*domain.Commit, error) {
	commit, err := u.commitStore.CommitByHash(ctx, hash)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Commit %s not found", hash))
	}
	return commit, nil
}

func (u *gitCommitUsecase) GetAllCommitsByRepository(ctx context.Context, repoID string) ([]domain.Commit, error) {
	repo, err := u.repositoryStore.RepositoryByID(ctx, repoID)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Repository %s not found", repoID))
	}

	commits, err := u.commitStore.CommitsByRepository(ctx, repo.URL)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return commits, nil
}
