package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"gorm.io/gorm"
)

// commitBatchSize keeps a single INSERT under the sqlite bind-variable limit.
const commitBatchSize = 100

// GormCommitStore is a GORM-based implementation of CommitStore
type GormCommitStore struct {
	db *gorm.DB
}

// NewGormCommitStore initializes a new GormCommitStore
func NewGormCommitStore(db *gorm.DB) CommitStore {
	return &GormCommitStore{db: db}
}

// SaveCommits inserts the whole batch in one transaction, in input order.
// Either every commit is stored or none is.
func (s *GormCommitStore) SaveCommits(ctx context.Context, commits []domain.Commit) ([]domain.Commit, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}
	if len(commits) == 0 {
		return []domain.Commit{}, nil
	}

	dbCommits := make([]Commit, 0, len(commits))
	for i := range commits {
		dbCommits = append(dbCommits, ToGormCommit(&commits[i]))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&dbCommits, commitBatchSize).Error
	})
	if err != nil {
		return nil, storeError(err, "save commits")
	}

	saved := make([]domain.Commit, 0, len(dbCommits))
	for _, c := range dbCommits {
		saved = append(saved, *c.ToDomain())
	}
	return saved, nil
}

func (s *GormCommitStore) CommitByHash(ctx context.Context, hash string) (*domain.Commit, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var commit Commit
	if err := s.db.WithContext(ctx).Where("hash = ?", hash).First(&commit).Error; err != nil {
		return nil, storeError(err, "find commit by hash")
	}
	return commit.ToDomain(), nil
}

// CommitsByRepository lists the commits of one repository, newest first.
func (s *GormCommitStore) CommitsByRepository(ctx context.Context, url string) ([]domain.Commit, error) {
	return s.find(ctx, s.db.WithContext(ctx).Where("repository_url = ?", url), "list commits by repository")
}

// AllCommits lists every commit, newest first.
func (s *GormCommitStore) AllCommits(ctx context.Context) ([]domain.Commit, error) {
	return s.find(ctx, s.db.WithContext(ctx), "list commits")
}

func (s *GormCommitStore) find(ctx context.Context, db *gorm.DB, op string) ([]domain.Commit, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var dbCommits []Commit
	if err := db.Order("date DESC").Find(&dbCommits).Error; err != nil {
		return nil, storeError(err, op)
	}

	commits := make([]domain.Commit, 0, len(dbCommits))
	for _, c := range dbCommits {
		commits = append(commits, *c.ToDomain())
	}
	return commits, nil
}

// DeleteCommitsByRepository removes every commit of one repository and
// reports how many rows went away.
func (s *GormCommitStore) DeleteCommitsByRepository(ctx context.Context, url string) (int64, error) {
	tx := s.db.WithContext(ctx).Where("repository_url = ?", url).Delete(&Commit{})
	if tx.Error != nil {
		return 0, storeError(tx.Error, "delete commits by repository")
	}
	return tx.RowsAffected, nil
}
