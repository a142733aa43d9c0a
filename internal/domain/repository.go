package domain

import "time"

// Repository is a catalogued source repository. URL holds the canonical
// "owner/name" identifier.
type Repository struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UploaderIP string    `json:"uploader_ip"`
}
