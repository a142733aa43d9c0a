package handlers

import (
	"net/http"

	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/response"
)

type BranchHandler struct {
	branchUsecase usecases.BranchUsecase
	auth          Authorizer
}

func NewBranchHandler(branchUsecase usecases.BranchUsecase, auth Authorizer) *BranchHandler {
	return &BranchHandler{branchUsecase: branchUsecase, auth: auth}
}

// FetchAllBranches godoc
// @Summary  List branches
// @Tags     branch
// @Produce  json
// @Success  200  {array}   domain.Branch
// @Failure  400  {object}  response.ErrorBody
// @Router   /branch/ [get]
func (h *BranchHandler) FetchAllBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchUsecase.GetAll(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error trying to read all branches from database")
		return
	}

	response.SuccessResponse(w, http.StatusOK, branches)
}

// FetchBranchesByRepo godoc
// @Summary  List the branches of a repository
// @Tags     branch
// @Produce  json
// @Param    repo_id  path      string  true  "repository id"
// @Success  200      {array}   domain.Branch
// @Failure  500      {object}  response.ErrorBody
// @Router   /branch/repo/{repo_id}/ [get]
func (h *BranchHandler) FetchBranchesByRepo(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchUsecase.GetByRepository(r.Context(), pathID(r, "repo_id"))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, branches)
}

// FetchBranch godoc
// @Summary  Get a branch
// @Tags     branch
// @Produce  json
// @Param    id   path      string  true  "branch id"
// @Success  200  {object}  domain.Branch
// @Failure  404  {object}  response.ErrorBody
// @Router   /branch/{id}/ [get]
func (h *BranchHandler) FetchBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.branchUsecase.GetByID(r.Context(), pathID(r, "id"))
	if err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	response.SuccessResponse(w, http.StatusOK, branch)
}

// DeleteBranch godoc
// @Summary  Delete a branch
// @Tags     branch
// @Param    id             path    string  true  "branch id"
// @Param    Authorization  header  string  true  "secret key"
// @Success  204
// @Failure  401  {object}  response.ErrorBody
// @Failure  404  {object}  response.ErrorBody
// @Router   /branch/{id}/ [delete]
func (h *BranchHandler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	if !h.auth.Allow(w, r) {
		return
	}

	if _, err := h.branchUsecase.Delete(r.Context(), pathID(r, "id")); err != nil {
		response.AppErrorResponse(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
