package handlers

import (
	"net/http"

	"github.com/just-nibble/git-service/internal/usecases"
	"github.com/just-nibble/git-service/pkg/response"
)

type EmailHandler struct {
	emailUsecase usecases.EmailUsecase
}

func NewEmailHandler(emailUsecase usecases.EmailUsecase) *EmailHandler {
	return &EmailHandler{emailUsecase: emailUsecase}
}

// FetchAllEmails godoc
// @Summary  List contributor emails
// @Tags     email
// @Produce  json
// @Success  200  {array}   domain.Email
// @Failure  400  {object}  response.ErrorBody
// @Router   /email/ [get]
func (h *EmailHandler) FetchAllEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.emailUsecase.GetAll(r.Context())
	if err != nil {
		response.ErrorResponse(w, http.StatusBadRequest, "Error trying to read all emails from database")
		return
	}

	response.SuccessResponse(w, http.StatusOK, emails)
}
