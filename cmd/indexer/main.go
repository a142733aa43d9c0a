package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/just-nibble/git-service/internal/http/handlers"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/internal/routes"
	"github.com/just-nibble/git-service/internal/seeder"
	"github.com/just-nibble/git-service/internal/storage"
	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/config"
	"github.com/just-nibble/git-service/pkg/git"
	"github.com/just-nibble/git-service/pkg/log"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		l := log.New("error", false, os.Stderr)
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := log.New(cfg.Log.Level, cfg.Log.Pretty, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the database
	db, err := storage.InitDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize database")
	}

	repoStore := repository.NewGormRepositoryStore(db)
	commitStore := repository.NewGormCommitStore(db)
	emailStore := repository.NewGormEmailStore(db)
	branchStore := repository.NewGormBranchStore(db)

	gitClient := git.NewGitClient(cfg.Git, logger)

	repoUsecase := usecases.NewGitRepositoryUsecase(repoStore, commitStore, emailStore, branchStore, gitClient, logger)
	auth := handlers.NewAuthorizer(cfg.Auth.SecretKey)
	if cfg.Auth.SecretKey == "" {
		logger.Warn().Msg("SECRET_KEY is not set, delete endpoints will reject every request")
	}

	var metricsPath string
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	// Set up HTTP routes
	router := routes.NewRouter(routes.Handlers{
		Repository: handlers.NewRepositoryHandler(repoUsecase, auth),
		Commit:     handlers.NewCommitHandler(usecases.NewGitCommitUsecase(commitStore, repoStore)),
		Branch:     handlers.NewBranchHandler(usecases.NewBranchUsecase(branchStore), auth),
		Email:      handlers.NewEmailHandler(usecases.NewEmailUsecase(emailStore)),
	}, routes.Options{MetricsPath: metricsPath})

	// Seed the database if necessary
	seeded, err := seeder.SeedDatabase(ctx, cfg.Seed, repoStore, repoUsecase, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed database")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           log.Middleware(logger, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("could not start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	// A seed interrupted by the signal is still rolling back its rows.
	if !waitForSeed(shutdownCtx, seeded) {
		logger.Warn().Msg("seeding did not finish before shutdown deadline")
	}
}

// waitForSeed blocks until seeded is closed or ctx is done, and reports
// whether seeding finished.
func waitForSeed(ctx context.Context, seeded <-chan struct{}) bool {
	select {
	case <-seeded:
		return true
	case <-ctx.Done():
		return false
	}
}
