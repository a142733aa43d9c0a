package routes

import (
	"net/http"

	_ "github.com/just-nibble/git-service/docs"
	"github.com/just-nibble/git-service/internal/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Repository *handlers.RepositoryHandler
	Commit     *handlers.CommitHandler
	Branch     *handlers.BranchHandler
	Email      *handlers.EmailHandler
}

type Options struct {
	// MetricsPath serves the Prometheus registry when not empty.
	MetricsPath string
}

func NewRouter(h Handlers, opts Options) *http.ServeMux {
	router := http.NewServeMux()
	router.HandleFunc("GET /{$}", hello)

	router.HandleFunc("GET /repo", h.Repository.FetchAllRepositories)
	router.HandleFunc("GET /repo/{$}", h.Repository.FetchAllRepositories)
	router.HandleFunc("POST /repo", h.Repository.AddRepository)
	router.HandleFunc("POST /repo/{$}", h.Repository.AddRepository)
	router.HandleFunc("GET /repo/{id}", h.Repository.FetchRepository)
	router.HandleFunc("GET /repo/{id}/{$}", h.Repository.FetchRepository)
	router.HandleFunc("DELETE /repo/{id}/{$}", h.Repository.DeleteRepository)

	router.HandleFunc("GET /commit/{$}", h.Commit.FetchAllCommits)
	router.HandleFunc("GET /commit/{hash}/{$}", h.Commit.FetchCommit)
	router.HandleFunc("GET /commit/repo/{id}/{$}", h.Commit.GetCommitsByRepo)

	router.HandleFunc("GET /branch/{$}", h.Branch.FetchAllBranches)
	router.HandleFunc("GET /branch/repo/{repo_id}/{$}", h.Branch.FetchBranchesByRepo)
	router.HandleFunc("GET /branch/{id}/{$}", h.Branch.FetchBranch)
	router.HandleFunc("DELETE /branch/{id}/{$}", h.Branch.DeleteBranch)

	router.HandleFunc("GET /email/{$}", h.Email.FetchAllEmails)

	// Serve Swagger documentation
	router.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	if opts.MetricsPath != "" {
		router.Handle("GET "+opts.MetricsPath, promhttp.Handler())
	}
	return router
}

func hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello from Go!"))
}
