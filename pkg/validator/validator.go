package validator

import (
	"fmt"
	"regexp"
	"strings"
)

// Host is the only remote the service clones from.
const Host = "github.com"

// Owner and repository segments are restricted to letters, digits and
// hyphens. The match is anchored on both ends: this is what keeps arbitrary
// text out of the clone URL.
var repoURLPattern = regexp.MustCompile(
	`^(?:https?://)?(?:www\.)?github\.com/([a-zA-Z0-9-]+)/([a-zA-Z0-9-]+)(?:\.git)?/?$`,
)

var canonicalPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+/[a-zA-Z0-9-]+$`)

// ResolveRepository extracts the canonical "owner/name" identifier from a
// user supplied URL. The identifier is lower-cased since the host treats
// owner and name case-insensitively. ok is false when raw does not point at a
// single hosted repository.
func ResolveRepository(raw string) (canonical string, ok bool) {
	m := repoURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.ToLower(fmt.Sprintf("%s/%s", m[1], m[2])), true
}

// IsRepository reports whether name is already a canonical "owner/name"
// identifier.
func IsRepository(name string) bool {
	return canonicalPattern.MatchString(name)
}
