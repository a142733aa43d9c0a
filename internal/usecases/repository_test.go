package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository/mocks"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ingestMocks struct {
	repos    *mocks.RepositoryStore
	commits  *mocks.CommitStore
	emails   *mocks.EmailStore
	branches *mocks.BranchStore
	git      *mocks.GitClient
}

func newIngestMocks() (*ingestMocks, GitRepositoryUsecase) {
	m := &ingestMocks{
		repos:    new(mocks.RepositoryStore),
		commits:  new(mocks.CommitStore),
		emails:   new(mocks.EmailStore),
		branches: new(mocks.BranchStore),
		git:      new(mocks.GitClient),
	}
	uc := NewGitRepositoryUsecase(m.repos, m.commits, m.emails, m.branches, m.git, zerolog.Nop())
	return m, uc
}

func (m *ingestMocks) assertExpectations(t *testing.T) {
	m.repos.AssertExpectations(t)
	m.commits.AssertExpectations(t)
	m.emails.AssertExpectations(t)
	m.branches.AssertExpectations(t)
	m.git.AssertExpectations(t)
}

// expectCreate stubs the lookup and insert of a new acme/widgets row.
func (m *ingestMocks) expectCreate() *domain.Repository {
	saved := &domain.Repository{ID: "r1", URL: "acme/widgets", UploaderIP: "10.0.0.1", CreatedAt: time.Now()}
	m.repos.On("RepositoryByURL", mock.Anything, "acme/widgets").Return(nil, errcodes.ErrNoRecordFound).Once()
	m.repos.On("SaveRepository", mock.Anything, mock.MatchedBy(func(r domain.Repository) bool {
		return r.ID != "" && r.URL == "acme/widgets" && r.UploaderIP == "10.0.0.1"
	})).Return(saved, nil).Once()
	return saved
}

// expectRollback stubs a successful compensation and checks that it runs on
// a live context.
func (m *ingestMocks) expectRollback(removed int64) {
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	m.commits.On("DeleteCommitsByRepository", live, "acme/widgets").Return(removed, nil).Once()
	m.repos.On("DeleteRepository", live, "r1").Return(&domain.Repository{ID: "r1", URL: "acme/widgets"}, nil).Once()
}

func history() []domain.Commit {
	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c0, c1 := "c0", "c1"
	return []domain.Commit{
		{Hash: "c2", Tree: &c1, Date: when.Add(2 * time.Hour), AuthorEmail: "a@x.io", CommitterEmail: "b@x.io", RepositoryURL: "acme/widgets"},
		{Hash: "c1", Tree: &c0, Date: when.Add(time.Hour), AuthorEmail: "b@x.io", CommitterEmail: "b@x.io", RepositoryURL: "acme/widgets"},
		{Hash: "c0", Date: when, AuthorEmail: "a@x.io", CommitterEmail: "a@x.io", RepositoryURL: "acme/widgets"},
	}
}

func TestGitRepoUsecase_Ingest_Success(t *testing.T) {
	// Arrange
	m, uc := newIngestMocks()
	saved := m.expectCreate()
	commits := history()

	m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(commits, nil)
	m.emails.On("SaveEmail", mock.Anything, domain.NewEmail("a@x.io")).Return(&domain.Email{}, nil).Once()
	m.emails.On("SaveEmail", mock.Anything, domain.NewEmail("b@x.io")).Return(nil, errcodes.ErrDuplicate).Once()
	m.commits.On("SaveCommits", mock.Anything, commits).Return(commits, nil)
	m.branches.On("SaveBranch", mock.Anything, mock.MatchedBy(func(b domain.Branch) bool {
		return b.ID != "" && b.Name == "main" && b.RepositoryID == "r1" && b.Head == "c2"
	})).Return(&domain.Branch{}, nil)

	// Act
	repo, err := uc.Ingest(context.TODO(), "https://github.com/acme/widgets", "main", "10.0.0.1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, saved, repo)
	m.assertExpectations(t)
	m.repos.AssertNotCalled(t, "DeleteRepository", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_InvalidURL(t *testing.T) {
	m, uc := newIngestMocks()

	repo, err := uc.Ingest(context.TODO(), "not-a-url", "main", "10.0.0.1")

	assert.Nil(t, repo)
	assert.Equal(t, errcodes.KindNotFound, errcodes.KindOf(err))
	m.assertExpectations(t)
}

func TestGitRepoUsecase_Ingest_AlreadyExists(t *testing.T) {
	m, uc := newIngestMocks()
	m.repos.On("RepositoryByURL", mock.Anything, "acme/widgets").Return(&domain.Repository{ID: "r0", URL: "acme/widgets"}, nil)

	repo, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Nil(t, repo)
	assert.Equal(t, errcodes.KindAlreadyExists, errcodes.KindOf(err))
	m.assertExpectations(t)
	m.repos.AssertNotCalled(t, "SaveRepository", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_LookupFailure(t *testing.T) {
	m, uc := newIngestMocks()
	m.repos.On("RepositoryByURL", mock.Anything, "acme/widgets").Return(nil, errors.New("connection refused"))

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindDB, errcodes.KindOf(err))
	m.repos.AssertNotCalled(t, "SaveRepository", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_MissingUploader(t *testing.T) {
	m, uc := newIngestMocks()
	m.repos.On("RepositoryByURL", mock.Anything, "acme/widgets").Return(nil, errcodes.ErrNoRecordFound)

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "")

	assert.Equal(t, errcodes.KindAuthorization, errcodes.KindOf(err))
	assert.ErrorIs(t, err, errcodes.ErrMissingUploader)
	m.repos.AssertNotCalled(t, "SaveRepository", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_LostInsertRace(t *testing.T) {
	m, uc := newIngestMocks()
	m.repos.On("RepositoryByURL", mock.Anything, "acme/widgets").Return(nil, errcodes.ErrNoRecordFound)
	m.repos.On("SaveRepository", mock.Anything, mock.Anything).Return(nil, errcodes.ErrDuplicate)

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindAlreadyExists, errcodes.KindOf(err))
	m.git.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_ExtractionFailureRollsBack(t *testing.T) {
	for _, cause := range []error{
		errcodes.ErrBranchNotFound,
		errcodes.ErrCloneFailed,
		errcodes.ErrMalformedCommit,
		errcodes.ErrCloneTimeout,
	} {
		t.Run(cause.Error(), func(t *testing.T) {
			m, uc := newIngestMocks()
			m.expectCreate()
			m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(nil, cause)
			m.expectRollback(0)

			repo, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

			assert.Nil(t, repo)
			assert.Equal(t, errcodes.KindGit, errcodes.KindOf(err))
			assert.ErrorIs(t, err, cause)
			m.assertExpectations(t)
		})
	}
}

func TestGitRepoUsecase_Ingest_CancelledCallerStillRollsBack(t *testing.T) {
	m, uc := newIngestMocks()
	m.expectCreate()

	ctx, cancel := context.WithCancel(context.Background())
	m.git.On("Extract", mock.Anything, "acme/widgets", "main").
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, errcodes.ErrExtractionCancelled)
	m.expectRollback(0)

	_, err := uc.Ingest(ctx, "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindGit, errcodes.KindOf(err))
	assert.ErrorIs(t, err, errcodes.ErrExtractionCancelled)
	m.assertExpectations(t)
}

func TestGitRepoUsecase_Ingest_EmailFailureRollsBack(t *testing.T) {
	m, uc := newIngestMocks()
	m.expectCreate()
	m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(history(), nil)
	m.emails.On("SaveEmail", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
	m.expectRollback(0)

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindDB, errcodes.KindOf(err))
	m.assertExpectations(t)
	m.commits.AssertNotCalled(t, "SaveCommits", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_NoCommitsPersistedRollsBack(t *testing.T) {
	m, uc := newIngestMocks()
	m.expectCreate()
	m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(history(), nil)
	m.emails.On("SaveEmail", mock.Anything, mock.Anything).Return(&domain.Email{}, nil)
	m.commits.On("SaveCommits", mock.Anything, mock.Anything).Return([]domain.Commit{}, nil)
	m.expectRollback(0)

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindDB, errcodes.KindOf(err))
	m.assertExpectations(t)
	m.branches.AssertNotCalled(t, "SaveBranch", mock.Anything, mock.Anything)
}

func TestGitRepoUsecase_Ingest_BranchFailureRollsBack(t *testing.T) {
	m, uc := newIngestMocks()
	m.expectCreate()
	commits := history()
	m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(commits, nil)
	m.emails.On("SaveEmail", mock.Anything, mock.Anything).Return(&domain.Email{}, nil)
	m.commits.On("SaveCommits", mock.Anything, commits).Return(commits, nil)
	m.branches.On("SaveBranch", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	m.expectRollback(3)

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindDB, errcodes.KindOf(err))
	m.assertExpectations(t)
}

func TestGitRepoUsecase_Ingest_CompensationFailureKeepsOriginalError(t *testing.T) {
	m, uc := newIngestMocks()
	m.expectCreate()
	m.git.On("Extract", mock.Anything, "acme/widgets", "main").Return(nil, errcodes.ErrBranchNotFound)
	m.commits.On("DeleteCommitsByRepository", mock.Anything, "acme/widgets").Return(int64(0), nil)
	m.repos.On("DeleteRepository", mock.Anything, "r1").Return(nil, errors.New("connection reset"))

	_, err := uc.Ingest(context.TODO(), "github.com/acme/widgets", "main", "10.0.0.1")

	assert.Equal(t, errcodes.KindGit, errcodes.KindOf(err))
	assert.ErrorIs(t, err, errcodes.ErrBranchNotFound)
}

func TestGitRepoUsecase_Delete(t *testing.T) {
	m, uc := newIngestMocks()
	m.repos.On("DeleteRepository", mock.Anything, "r1").Return(&domain.Repository{ID: "r1", URL: "acme/widgets"}, nil)
	m.repos.On("DeleteRepository", mock.Anything, "r2").Return(nil, errcodes.ErrNoRecordFound)

	repo, err := uc.Delete(context.TODO(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets", repo.URL)

	_, err = uc.Delete(context.TODO(), "r2")
	assert.Equal(t, errcodes.KindNotFound, errcodes.KindOf(err))
}
