package handlers

import (
	"net/http"

	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/response"
)

type CommitHandler struct {
	gitCommitUseCase usecases.GitCommitUsecase
}

func NewCommitHandler(gitCommitUseCase usecases.GitCommitUsecase) *CommitHandler {
	return &CommitHandler{gitCommitUseCase: gitCommitUseCase}
}

// FetchAllCommits godoc
// @Summary  List commits
// @Tags     commit
// @Produce  json
// @Success  200  {array}   domain.Commit
// @Failure  400  {object}  response.ErrorBody
// @Router   /commit/ [get]
func (h *CommitHandler) FetchAllCommits(w http.ResponseWriter, r *http.Request) {
	commits, err := h.gitCommitUseCase.GetAll(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error trying to read all commits from database")
		return
	}

	response.SuccessResponse(w, http.StatusOK, commits)
}

// FetchCommit godoc
// @Summary  Get a commit
// @Tags     commit
// @Produce  json
// @Param    hash  path      string  true  "commit hash"
// @Success  200   {object}  domain.Commit
// @Failure  404   {object}  response.ErrorBody
// @Router   /commit/{hash}/ [get]
func (h *CommitHandler) FetchCommit(w http.ResponseWriter, r *http.Request) {
	commit, err := h.gitCommitUseCase.GetByHash(r.Context(), r.PathValue("hash"))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, commit)
}

// GetCommitsByRepo godoc
// @Summary  List the commits of a repository
// @Tags     commit
// @Produce  json
// @Param    id   path      string  true  "repository id"
// @Success  200  {array}   domain.Commit
// @Failure  404  {object}  response.ErrorBody
// @Router   /commit/repo/{id}/ [get]
func (h *CommitHandler) GetCommitsByRepo(w http.ResponseWriter, r *http.Request) {
	commits, err := h.gitCommitUseCase.GetAllCommitsByRepository(r.Context(), pathID(r, "id"))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, commits)
}
