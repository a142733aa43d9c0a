package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"gorm.io/gorm"
)

// GormBranchStore is a GORM-based implementation of BranchStore
type GormBranchStore struct {
	db *gorm.DB
}

// NewGormBranchStore initializes a new GormBranchStore
func NewGormBranchStore(db *gorm.DB) BranchStore {
	return &GormBranchStore{db: db}
}

func (s *GormBranchStore) SaveBranch(ctx context.Context, branch domain.Branch) (*domain.Branch, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	dbBranch := ToGormBranch(&branch)
	if err := s.db.WithContext(ctx).Create(dbBranch).Error; err != nil {
		return nil, storeError(err, "save branch")
	}
	return dbBranch.ToDomain(), nil
}

func (s *GormBranchStore) BranchByID(ctx context.Context, id string) (*domain.Branch, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var branch Branch
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, storeError(err, "find branch by id")
	}
	return branch.ToDomain(), nil
}

func (s *GormBranchStore) BranchesByRepository(ctx context.Context, repositoryID string) ([]domain.Branch, error) {
	return s.find(s.db.WithContext(ctx).Where("repository_id = ?", repositoryID), "list branches by repository")
}

func (s *GormBranchStore) AllBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.find(s.db.WithContext(ctx), "list branches")
}

func (s *GormBranchStore) find(db *gorm.DB, op string) ([]domain.Branch, error) {
	var dbBranches []Branch
	if err := db.Order("name").Find(&dbBranches).Error; err != nil {
		return nil, storeError(err, op)
	}

	branches := make([]domain.Branch, 0, len(dbBranches))
	for _, b := range dbBranches {
		branches = append(branches, *b.ToDomain())
	}
	return branches, nil
}

// DeleteBranch removes the row and returns it as it was.
func (s *GormBranchStore) DeleteBranch(ctx context.Context, id string) (*domain.Branch, error) {
	var branch Branch

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&branch).Error; err != nil {
			return err
		}
		return tx.Delete(&branch).Error
	})
	if err != nil {
		return nil, storeError(err, "delete branch")
	}
	return branch.ToDomain(), nil
}
