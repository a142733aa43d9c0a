package domain

import "time"

// Commit is a normalized commit record. Tree is the first parent hash and is
// nil for root commits.
type Commit struct {
	Hash           string    `json:"hash"`
	Tree           *string   `json:"tree"`
	Text           string    `json:"text"`
	Date           time.Time `json:"date"`
	AuthorEmail    string    `json:"author_email"`
	AuthorName     string    `json:"author_name"`
	CommitterEmail string    `json:"committer_email"`
	CommitterName  string    `json:"committer_name"`
	RepositoryURL  string    `json:"repository_url"`
}

// Emails returns the distinct author and committer addresses referenced by
// commits, in first-seen order.
func Emails(commits []Commit) []string {
	seen := make(map[string]struct{}, len(commits))
	var emails []string

	for _, c := range commits {
		for _, e := range [2]string{c.AuthorEmail, c.CommitterEmail} {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			emails = append(emails, e)
		}
	}
	return emails
}
