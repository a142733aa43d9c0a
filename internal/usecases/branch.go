package usecases

import (
	"context"
	"fmt"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/pkg/errcodes"
)

type BranchUsecase interface {
	GetAll(ctx context.Context) ([]domain.Branch, error)
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	GetByRepository(ctx context.Context, repoID string) ([]domain.Branch, error)
	Delete(ctx context.Context, id string) (*domain.Branch, error)
}

type branchUsecase struct {
	branchStore repository.BranchStore
}

func NewBranchUsecase(branchStore repository.BranchStore) BranchUsecase {
	return &branchUsecase{branchStore: branchStore}
}

func (u *branchUsecase) GetAll(ctx context.Context) ([]domain.Branch, error) {
	branches, err := u.branchStore.AllBranches(ctx)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return branches, nil
}

func (u *branchUsecase) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	branch, err := u.branchStore.BranchByID(ctx, id)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Branch %s not found", id))
	}
	return branch, nil
}

func (u *branchUsecase) GetByRepository(ctx context.Context, repoID string) ([]domain.Branch, error) {
	branches, err := u.branchStore.BranchesByRepository(ctx, repoID)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return branches, nil
}

func (u *branchUsecase) Delete(ctx context.Context, id string) (*domain.Branch, error) {
	branch, err := u.branchStore.DeleteBranch(ctx, id)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Branch %s not found", id))
	}
	return branch, nil
}
