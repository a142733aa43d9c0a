package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/just-nibble/git-service/internal/http/dtos"
	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/response"
)

type RepositoryHandler struct {
	gitRepositoryUsecase usecases.GitRepositoryUsecase
	auth                 Authorizer
}

func NewRepositoryHandler(gitRepositoryUsecase usecases.GitRepositoryUsecase, auth Authorizer) *RepositoryHandler {
	return &RepositoryHandler{
		gitRepositoryUsecase: gitRepositoryUsecase,
		auth:                 auth,
	}
}

// AddRepository godoc
// @Summary  Ingest a repository
// @Tags     repository
// @Accept   json
// @Produce  json
// @Param    body  body      dtos.RepositoryInput  true  "repository url and branch"
// @Success  201   {object}  domain.Repository
// @Failure  400   {object}  response.ErrorBody
// @Failure  403   {object}  response.ErrorBody
// @Failure  404   {object}  response.ErrorBody
// @Router   /repo/ [post]
func (rh RepositoryHandler) AddRepository(w http.ResponseWriter, r *http.Request) {
	var req dtos.RepositoryInput

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	repo, err := rh.gitRepositoryUsecase.Ingest(r.Context(), req.URL, req.Branch, uploaderAddr(r))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusCreated, repo)
}

// FetchAllRepositories godoc
// @Summary  List repositories
// @Tags     repository
// @Produce  json
// @Success  200  {array}   domain.Repository
// @Failure  400  {object}  response.ErrorBody
// @Router   /repo/ [get]
func (rh RepositoryHandler) FetchAllRepositories(w http.ResponseWriter, r *http.Request) {
	repos, err := rh.gitRepositoryUsecase.GetAll(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error trying to read all repositories from database")
		return
	}

	response.SuccessResponse(w, http.StatusOK, repos)
}

// FetchRepository godoc
// @Summary  Get a repository
// @Tags     repository
// @Produce  json
// @Param    id   path      string  true  "repository id"
// @Success  200  {object}  domain.Repository
// @Failure  404  {object}  response.ErrorBody
// @Router   /repo/{id}/ [get]
func (rh RepositoryHandler) FetchRepository(w http.ResponseWriter, r *http.Request) {
	repo, err := rh.gitRepositoryUsecase.GetByID(r.Context(), pathID(r, "id"))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, repo)
}

// DeleteRepository godoc
// @Summary  Delete a repository
// @Tags     repository
// @Param    id             path    string  true  "repository id"
// @Param    Authorization  header  string  true  "secret key"
// @Success  204
// @Failure  401  {object}  response.ErrorBody
// @Failure  404  {object}  response.ErrorBody
// @Router   /repo/{id}/ [delete]
func (rh RepositoryHandler) DeleteRepository(w http.ResponseWriter, r *http.Request) {
	if !rh.auth.Allow(w, r) {
		return
	}

	if _, err := rh.gitRepositoryUsecase.Delete(r.Context(), pathID(r, "id")); err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
