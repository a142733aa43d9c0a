package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"gorm.io/gorm"
)

// GormRepositoryStore is a GORM-based implementation of RepositoryStore
type GormRepositoryStore struct {
	db *gorm.DB
}

// NewGormRepositoryStore initializes a new GormRepositoryStore
func NewGormRepositoryStore(db *gorm.DB) RepositoryStore {
	return &GormRepositoryStore{db: db}
}

// SaveRepository inserts a new row. A row with the same URL already present
// yields errcodes.ErrDuplicate.
func (r *GormRepositoryStore) SaveRepository(ctx context.Context, repo domain.Repository) (*domain.Repository, error) {
	dbRepository := ToGormRepo(&repo)

	if err := r.db.WithContext(ctx).Create(dbRepository).Error; err != nil {
		return nil, storeError(err, "save repository")
	}
	return dbRepository.ToDomain(), nil
}

func (r *GormRepositoryStore) RepositoryByID(ctx context.Context, id string) (*domain.Repository, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var repo Repository
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&repo).Error; err != nil {
		return nil, storeError(err, "find repository by id")
	}
	return repo.ToDomain(), nil
}

func (r *GormRepositoryStore) RepositoryByURL(ctx context.Context, url string) (*domain.Repository, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var repo Repository
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&repo).Error; err != nil {
		return nil, storeError(err, "find repository by url")
	}
	return repo.ToDomain(), nil
}

// AllRepositories lists every repository, most recently updated first.
func (r *GormRepositoryStore) AllRepositories(ctx context.Context) ([]domain.Repository, error) {
	var dbRepositories []Repository

	err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&dbRepositories).Error
	if err != nil {
		return nil, storeError(err, "list repositories")
	}

	repositories := make([]domain.Repository, 0, len(dbRepositories))
	for _, dbRepository := range dbRepositories {
		repositories = append(repositories, *dbRepository.ToDomain())
	}
	return repositories, nil
}

// DeleteRepository removes the row and returns it as it was.
func (r *GormRepositoryStore) DeleteRepository(ctx context.Context, id string) (*domain.Repository, error) {
	var repo Repository

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&repo).Error; err != nil {
			return err
		}
		return tx.Delete(&repo).Error
	})
	if err != nil {
		return nil, storeError(err, "delete repository")
	}
	return repo.ToDomain(), nil
}

func (r *GormRepositoryStore) CountRepositories(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Repository{}).Count(&count).Error; err != nil {
		return 0, storeError(err, "count repositories")
	}
	return count, nil
}
