package seeder

import (
	"context"

	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/config"
	"github.com/rs/zerolog"
)

// seedUploader attributes seeded repositories to the service itself.
const seedUploader = "127.0.0.1"

// SeedDatabase ingests the configured seed repository in the background if
// the repository table is empty. The returned channel is closed once the
// background ingestion is over, or right away when nothing is seeded.
func SeedDatabase(ctx context.Context, cfg config.SeedConfig, repoStore repository.RepositoryStore,
	ingester usecases.GitRepositoryUsecase, log zerolog.Logger) (<-chan struct{}, error) {
	done := make(chan struct{})
	if cfg.Repository == "" {
		close(done)
		return done, nil
	}

	// Check if the repository table is empty
	count, err := repoStore.CountRepositories(ctx)
	if err != nil {
		close(done)
		return done, err
	}
	if count > 0 {
		close(done)
		return done, nil
	}

	log.Info().Str("repository", cfg.Repository).Str("branch", cfg.Branch).Msg("seeding database")

	go func() {
		defer close(done)
		repo, err := ingester.Ingest(ctx, cfg.Repository, cfg.Branch, seedUploader)
		if err != nil {
			log.Error().Err(err).Str("repository", cfg.Repository).Msg("seeding failed")
			return
		}
		log.Info().Str("repository", repo.URL).Str("id", repo.ID).Msg("database seeding completed")
	}()

	return done, nil
}
