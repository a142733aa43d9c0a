package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/internal/repository/mocks"
	"github.com/just-nibble/git-service/internal/storage"
	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/config"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeIngester struct {
	mock.Mock
}

func (f *fakeIngester) Ingest(ctx context.Context, url, branch, uploaderAddr string) (*domain.Repository, error) {
	args := f.Called(ctx, url, branch, uploaderAddr)
	repo, _ := args.Get(0).(*domain.Repository)
	return repo, args.Error(1)
}

func (f *fakeIngester) GetAll(context.Context) ([]domain.Repository, error)         { return nil, nil }
func (f *fakeIngester) GetByID(context.Context, string) (*domain.Repository, error) { return nil, nil }
func (f *fakeIngester) Delete(context.Context, string) (*domain.Repository, error)  { return nil, nil }

var seed = config.SeedConfig{Repository: "https://github.com/acme/widgets", Branch: "main"}

func TestSeedDatabase_EmptyTable(t *testing.T) {
	repoStore := new(mocks.RepositoryStore)
	ingester := new(fakeIngester)
	repoStore.On("CountRepositories", mock.Anything).Return(int64(0), nil)
	ingester.On("Ingest", mock.Anything, seed.Repository, "main", "127.0.0.1").
		Return(&domain.Repository{ID: "r1", URL: "acme/widgets"}, nil)

	done, err := SeedDatabase(context.Background(), seed, repoStore, ingester, zerolog.Nop())
	require.NoError(t, err)
	<-done

	ingester.AssertExpectations(t)
}

func TestSeedDatabase_SkipsWhenPopulated(t *testing.T) {
	repoStore := new(mocks.RepositoryStore)
	ingester := new(fakeIngester)
	repoStore.On("CountRepositories", mock.Anything).Return(int64(3), nil)

	done, err := SeedDatabase(context.Background(), seed, repoStore, ingester, zerolog.Nop())
	require.NoError(t, err)
	<-done

	ingester.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSeedDatabase_NotConfigured(t *testing.T) {
	repoStore := new(mocks.RepositoryStore)

	done, err := SeedDatabase(context.Background(), config.SeedConfig{}, repoStore, new(fakeIngester), zerolog.Nop())
	require.NoError(t, err)
	<-done

	repoStore.AssertNotCalled(t, "CountRepositories", mock.Anything)
}

func TestSeedDatabase_CountFailure(t *testing.T) {
	repoStore := new(mocks.RepositoryStore)
	repoStore.On("CountRepositories", mock.Anything).Return(int64(0), errors.New("connection refused"))

	_, err := SeedDatabase(context.Background(), seed, repoStore, new(fakeIngester), zerolog.Nop())
	assert.Error(t, err)
}

func TestSeedDatabase_InterruptedSeedLeavesNoRow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, storage.Migrate(db))

	repoStore := repository.NewGormRepositoryStore(db)
	gitClient := new(mocks.GitClient)
	uc := usecases.NewGitRepositoryUsecase(repoStore, repository.NewGormCommitStore(db),
		repository.NewGormEmailStore(db), repository.NewGormBranchStore(db), gitClient, zerolog.Nop())

	// The clone blocks until the seeding context is cancelled.
	started := make(chan struct{})
	gitClient.On("Extract", mock.Anything, "acme/widgets", "main").
		Run(func(args mock.Arguments) {
			close(started)
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, errcodes.ErrExtractionCancelled)

	ctx, cancel := context.WithCancel(context.Background())
	done, err := SeedDatabase(ctx, seed, repoStore, uc, zerolog.Nop())
	require.NoError(t, err)

	<-started
	count, err := repoStore.CountRepositories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	cancel()
	<-done

	count, err = repoStore.CountRepositories(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	_, err = repoStore.RepositoryByURL(context.Background(), "acme/widgets")
	assert.ErrorIs(t, err, errcodes.ErrNoRecordFound)
}
