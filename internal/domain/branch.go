package domain

// Branch points at the head commit of a named branch of a repository.
type Branch struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RepositoryID string `json:"repository_id"`
	Head         string `json:"head"`
}
