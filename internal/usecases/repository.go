package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/just-nibble/git-service/pkg/git"
	"github.com/just-nibble/git-service/pkg/validator"
	"github.com/rs/zerolog"
)

type GitRepositoryUsecase interface {
	// Ingest catalogues a hosted repository together with the full history
	// of one branch. Any failure after the repository row is created removes
	// that row and whatever commits were stored for it.
	Ingest(ctx context.Context, url, branch, uploaderAddr string) (*domain.Repository, error)
	GetAll(ctx context.Context) ([]domain.Repository, error)
	GetByID(ctx context.Context, id string) (*domain.Repository, error)
	Delete(ctx context.Context, id string) (*domain.Repository, error)
}

type gitRepoUsecase struct {
	repositoryStore repository.RepositoryStore
	commitStore     repository.CommitStore
	emailStore      repository.EmailStore
	branchStore     repository.BranchStore
	gitClient       git.GitClient
	log             zerolog.Logger
}

func NewGitRepositoryUsecase(repositoryStore repository.RepositoryStore, commitStore repository.CommitStore,
	emailStore repository.EmailStore, branchStore repository.BranchStore, gitClient git.GitClient, log zerolog.Logger) GitRepositoryUsecase {
	ingMetrics.init()
	return &gitRepoUsecase{
		repositoryStore: repositoryStore,
		commitStore:     commitStore,
		emailStore:      emailStore,
		branchStore:     branchStore,
		gitClient:       gitClient,
		log:             log.With().Str("component", "ingest").Logger(),
	}
}

func (uc *gitRepoUsecase) GetAll(ctx context.Context) ([]domain.Repository, error) {
	repos, err := uc.repositoryStore.AllRepositories(ctx)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return repos, nil
}

func (uc *gitRepoUsecase) GetByID(ctx context.Context, id string) (*domain.Repository, error) {
	repo, err := uc.repositoryStore.RepositoryByID(ctx, id)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Repository %s not found", id))
	}
	return repo, nil
}

func (uc *gitRepoUsecase) Delete(ctx context.Context, id string) (*domain.Repository, error) {
	repo, err := uc.repositoryStore.DeleteRepository(ctx, id)
	if err != nil {
		return nil, errcodes.FromStore(err, fmt.Sprintf("Repository %s not found", id))
	}
	uc.log.Info().Str("repository", repo.URL).Str("id", repo.ID).Msg("repository deleted")
	return repo, nil
}

func (uc *gitRepoUsecase) Ingest(ctx context.Context, url, branch, uploaderAddr string) (*domain.Repository, error) {
	start := time.Now()
	result := resultFailed
	defer func() {
		ingMetrics.ingestions.WithLabelValues(result).Inc()
		ingMetrics.ingestDuration.Observe(time.Since(start).Seconds())
	}()

	canonicalID, ok := validator.ResolveRepository(url)
	if !ok {
		result = resultRejected
		return nil, errcodes.NotFound(fmt.Sprintf("%q is not a valid %s repository url", url, validator.Host))
	}
	log := uc.log.With().Str("repository", canonicalID).Str("branch", branch).Logger()
	log.Info().Msg("ingestion started")

	// ensure repo does not exist on the db
	existing, err := uc.repositoryStore.RepositoryByURL(ctx, canonicalID)
	if err != nil && !errors.Is(err, errcodes.ErrNoRecordFound) {
		return nil, errcodes.DBError(err)
	}
	if existing != nil {
		result = resultRejected
		return nil, errcodes.AlreadyExists(fmt.Sprintf("Repository %s already exists", canonicalID), errcodes.ErrRepoAlreadyAdded)
	}

	if uploaderAddr == "" {
		result = resultRejected
		return nil, errcodes.Unauthorized("Could not determine the uploader address", errcodes.ErrMissingUploader)
	}

	repo, err := uc.repositoryStore.SaveRepository(ctx, domain.Repository{
		ID:         uuid.NewString(),
		URL:        canonicalID,
		UploaderIP: uploaderAddr,
	})
	if errors.Is(err, errcodes.ErrDuplicate) {
		// lost the race against a concurrent ingestion of the same url
		result = resultRejected
		return nil, errcodes.AlreadyExists(fmt.Sprintf("Repository %s already exists", canonicalID), err)
	}
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	log.Debug().Str("id", repo.ID).Msg("repository created")

	if err := uc.populate(ctx, log, *repo, branch); err != nil {
		if uc.compensate(ctx, log, *repo, err) {
			result = resultRolledBack
		}
		return nil, err
	}

	result = resultSuccess
	log.Info().Str("id", repo.ID).Dur("duration", time.Since(start)).Msg("ingestion finished")
	return repo, nil
}

// populate extracts the branch history and stores identities, commits and
// the branch pointer for repo.
func (uc *gitRepoUsecase) populate(ctx context.Context, log zerolog.Logger, repo domain.Repository, branch string) error {
	extractStart := time.Now()
	commits, err := uc.gitClient.Extract(ctx, repo.URL, branch)
	ingMetrics.extractDuration.Observe(time.Since(extractStart).Seconds())
	if err != nil {
		return errcodes.GitError(extractionMessage(repo.URL, branch, err), err)
	}
	log.Debug().Int("commits", len(commits)).Msg("history extracted")

	for _, address := range domain.Emails(commits) {
		_, err := uc.emailStore.SaveEmail(ctx, domain.NewEmail(address))
		if errors.Is(err, errcodes.ErrDuplicate) {
			continue
		}
		if err != nil {
			return errcodes.DBError(err)
		}
		ingMetrics.emailsRegistered.Inc()
	}
	log.Debug().Msg("contributor emails registered")

	saved, err := uc.commitStore.SaveCommits(ctx, commits)
	if err != nil {
		return errcodes.DBError(err)
	}
	if len(saved) == 0 {
		return errcodes.DBError(fmt.Errorf("no commits persisted for %s", repo.URL))
	}
	log.Debug().Int("commits", len(saved)).Msg("commits persisted")

	_, err = uc.branchStore.SaveBranch(ctx, domain.Branch{
		ID:           uuid.NewString(),
		Name:         branch,
		RepositoryID: repo.ID,
		Head:         saved[0].Hash,
	})
	if err != nil {
		return errcodes.DBError(err)
	}

	ingMetrics.commitsIngested.Add(float64(len(saved)))
	return nil
}

// compensate removes the commits and the row of a failed ingestion. It runs
// even when ctx is already cancelled and reports whether it succeeded. Its
// own failure is logged and never replaces cause.
func (uc *gitRepoUsecase) compensate(ctx context.Context, log zerolog.Logger, repo domain.Repository, cause error) bool {
	ctx = context.WithoutCancel(ctx)

	removed, err := uc.commitStore.DeleteCommitsByRepository(ctx, repo.URL)
	if err == nil {
		_, err = uc.repositoryStore.DeleteRepository(ctx, repo.ID)
	}
	if err != nil && !errors.Is(err, errcodes.ErrNoRecordFound) {
		ingMetrics.compensations.WithLabelValues("failed").Inc()
		log.Warn().Err(err).
			Str("id", repo.ID).
			AnErr("cause", cause).
			Str("event", "consistency").
			Msg("failed to roll back ingestion, repository row left behind")
		return false
	}

	ingMetrics.compensations.WithLabelValues("ok").Inc()
	log.Info().Str("id", repo.ID).Int64("commits_removed", removed).AnErr("cause", cause).Msg("ingestion rolled back")
	return true
}

func extractionMessage(id, branch string, err error) string {
	switch {
	case errors.Is(err, errcodes.ErrBranchNotFound):
		return fmt.Sprintf("Branch %q not found in %s", branch, id)
	case errors.Is(err, errcodes.ErrCloneTimeout):
		return fmt.Sprintf("Timed out extracting the history of %s", id)
	case errors.Is(err, errcodes.ErrExtractionCancelled):
		return fmt.Sprintf("Extraction of %s was cancelled", id)
	case errors.Is(err, errcodes.ErrMalformedCommit):
		return fmt.Sprintf("Malformed commit in the history of %s", id)
	default:
		return fmt.Sprintf("Failed to clone %s", id)
	}
}
