package errcodes

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoRecordFound    = errors.New("no record found")
	ErrDuplicate        = errors.New("record already exists")
	ErrContextCancelled = errors.New("context cancelled")

	ErrInvalidRepositoryName = errors.New("not a hosted repository")
	ErrRepoAlreadyAdded      = errors.New("repository already exists")
	ErrMissingUploader       = errors.New("failed to fetch uploader ip")

	ErrCloneFailed         = errors.New("clone failed")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrMalformedCommit     = errors.New("malformed commit")
	ErrCloneTimeout        = errors.New("clone timed out")
	ErrExtractionCancelled = errors.New("extraction cancelled")
)

// Kind discriminates the errors surfaced to API callers.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadyExists
	KindAuthorization
	KindGit
	KindDB
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindAuthorization:
		return "AuthorizationError"
	case KindGit:
		return "GitError"
	case KindDB:
		return "DbError"
	default:
		return "Unknown"
	}
}

// Error is an application error carrying one discriminant and one
// human-readable message. Cause is kept for logs and errors.Is checks and is
// never shown to API callers.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail())
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Detail is the message exposed in the `detail` field of error responses.
func (e *Error) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == KindNotFound {
		return "The requested item was not found"
	}
	return "An unexpected error has occurred"
}

func (e *Error) StatusCode() int {
	return StatusCode(e.Kind)
}

func StatusCode(k Kind) int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindAlreadyExists:
		return http.StatusForbidden
	case KindGit:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AlreadyExists(message string, cause error) *Error {
	return &Error{Kind: KindAlreadyExists, Message: message, Cause: cause}
}

func Unauthorized(message string, cause error) *Error {
	return &Error{Kind: KindAuthorization, Message: message, Cause: cause}
}

func GitError(message string, cause error) *Error {
	return &Error{Kind: KindGit, Message: message, Cause: cause}
}

// DBError wraps a storage failure. The message stays generic so driver
// details do not leak to callers.
func DBError(cause error) *Error {
	return &Error{Kind: KindDB, Cause: cause}
}

// KindOf reports the discriminant of err, or KindUnknown when err is not an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FromStore converts a persistence error into an *Error, mapping a missing
// row to NotFound with the given message.
func FromStore(err error, notFoundMessage string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, ErrNoRecordFound) {
		return &Error{Kind: KindNotFound, Message: notFoundMessage, Cause: err}
	}
	return DBError(err)
}
