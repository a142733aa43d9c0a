package handlers

import (
	"crypto/subtle"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/just-nibble/git-service/pkg/response"
)

const invalidAuthorization = "You must provide a valid Authorization"

// pathID reads a uuid path value. Anything that does not parse becomes the
// nil uuid, which never matches a stored row.
func pathID(r *http.Request, name string) string {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil.String()
	}
	return id.String()
}

// uploaderAddr is the IP of the peer that sent r, or "" when unknown.
func uploaderAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Authorizer guards destructive endpoints with a shared secret sent as the
// Authorization header.
type Authorizer struct {
	secret []byte
}

func NewAuthorizer(secret string) Authorizer {
	return Authorizer{secret: []byte(secret)}
}

// Allow writes the rejection and returns false unless r carries the secret.
// An empty secret rejects every request.
func (a Authorizer) Allow(w http.ResponseWriter, r *http.Request) bool {
	values, ok := r.Header[http.CanonicalHeaderKey("Authorization")]
	if !ok || len(values) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return false
	}

	given := []byte(values[0])
	if len(a.secret) == 0 || subtle.ConstantTimeCompare(given, a.secret) != 1 {
		response.AppErrorResponse(w, errcodes.Unauthorized(invalidAuthorization, nil))
		return false
	}
	return true
}
