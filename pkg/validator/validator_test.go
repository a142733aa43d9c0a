package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRepository(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"https", "https://github.com/acme/widgets", "acme/widgets", true},
		{"http with www", "http://www.github.com/acme/widgets", "acme/widgets", true},
		{"no scheme", "github.com/acme/widgets", "acme/widgets", true},
		{"git suffix", "https://github.com/acme/widgets.git", "acme/widgets", true},
		{"trailing slash", "https://github.com/acme/widgets/", "acme/widgets", true},
		{"mixed case", "https://github.com/Acme/Widgets", "acme/widgets", true},
		{"upper case host", "https://GitHub.com/acme/widgets", "", false},
		{"hyphens and digits", "github.com/acme-2/widgets-v3", "acme-2/widgets-v3", true},
		{"not a url", "not-a-url", "", false},
		{"missing repo", "https://github.com/acme", "", false},
		{"missing repo trailing slash", "https://github.com/acme/", "", false},
		{"extra segment", "https://github.com/acme/widgets/tree/main", "", false},
		{"other host", "https://gitlab.com/acme/widgets", "", false},
		{"host suffix", "https://github.com.evil.io/acme/widgets", "", false},
		{"shell metacharacters", "https://github.com/acme/widgets;rm -rf", "", false},
		{"underscore", "https://github.com/acme/my_widgets", "", false},
		{"query string", "https://github.com/acme/widgets?x=1", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveRepository(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRepository(t *testing.T) {
	assert.True(t, IsRepository("acme/widgets"))
	assert.False(t, IsRepository("acme"))
	assert.False(t, IsRepository("acme/widgets/extra"))
	assert.False(t, IsRepository("../etc/passwd"))
}
