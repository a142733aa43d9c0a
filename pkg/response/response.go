package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/just-nibble/git-service/pkg/errcodes"
)

// ErrorBody is the uniform error payload of the API.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func SuccessResponse(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}

func ErrorResponse(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorBody{Detail: detail})
}

// AppErrorResponse writes err using the status code of its discriminant.
// Errors that are not *errcodes.Error are reported as 500 without leaking
// their text.
func AppErrorResponse(w http.ResponseWriter, err error) {
	var appErr *errcodes.Error
	if errors.As(err, &appErr) {
		ErrorResponse(w, appErr.StatusCode(), appErr.Detail())
		return
	}
	ErrorResponse(w, http.StatusInternalServerError, "An unexpected error has occurred")
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
