package dtos

// RepositoryInput is the body of an ingestion request.
type RepositoryInput struct {
	URL    string `json:"url" example:"https://github.com/acme/widgets"`
	Branch string `json:"branch" example:"main"`
}
