package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/just-nibble/git-service/internal/domain"
	"gorm.io/gorm"
)

// Repository is the catalogue row of an ingested repository.
type Repository struct {
	ID         string `gorm:"primaryKey;size:36"`
	URL        string `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time `gorm:"index"`
	UploaderIP string
}

func (Repository) TableName() string { return "repository" }

func (r *Repository) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Commit is keyed by its hash. Tree holds the first parent hash.
type Commit struct {
	Hash           string `gorm:"primaryKey"`
	Tree           *string
	Text           string
	Date           time.Time `gorm:"index"`
	AuthorEmail    string    `gorm:"index"`
	AuthorName     string
	CommitterEmail string `gorm:"index"`
	CommitterName  string
	RepositoryURL  string `gorm:"index;not null"`
}

func (Commit) TableName() string { return "commit" }

type Email struct {
	Email   string `gorm:"primaryKey"`
	HashMD5 string `gorm:"column:hash_md5;not null"`
}

func (Email) TableName() string { return "email" }

type Branch struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string
	RepositoryID string `gorm:"index;not null"`
	Head         string
}

func (Branch) TableName() string { return "branch" }

func (b *Branch) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Models lists every table for AutoMigrate.
func Models() []interface{} {
	return []interface{}{&Repository{}, &Commit{}, &Email{}, &Branch{}}
}

func (r *Repository) ToDomain() *domain.Repository {
	return &domain.Repository{
		ID:         r.ID,
		URL:        r.URL,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		UploaderIP: r.UploaderIP,
	}
}

func ToGormRepo(r *domain.Repository) *Repository {
	return &Repository{
		ID:         r.ID,
		URL:        r.URL,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		UploaderIP: r.UploaderIP,
	}
}

func (c *Commit) ToDomain() *domain.Commit {
	return &domain.Commit{
		Hash:           c.Hash,
		Tree:           c.Tree,
		Text:           c.Text,
		Date:           c.Date,
		AuthorEmail:    c.AuthorEmail,
		AuthorName:     c.AuthorName,
		CommitterEmail: c.CommitterEmail,
		CommitterName:  c.CommitterName,
		RepositoryURL:  c.RepositoryURL,
	}
}

func ToGormCommit(c *domain.Commit) Commit {
	return Commit{
		Hash:           c.Hash,
		Tree:           c.Tree,
		Text:           c.Text,
		Date:           c.Date,
		AuthorEmail:    c.AuthorEmail,
		AuthorName:     c.AuthorName,
		CommitterEmail: c.CommitterEmail,
		CommitterName:  c.CommitterName,
		RepositoryURL:  c.RepositoryURL,
	}
}

func (e *Email) ToDomain() *domain.Email {
	return &domain.Email{Email: e.Email, HashMD5: e.HashMD5}
}

func (b *Branch) ToDomain() *domain.Branch {
	return &domain.Branch{
		ID:           b.ID,
		Name:         b.Name,
		RepositoryID: b.RepositoryID,
		Head:         b.Head,
	}
}

func ToGormBranch(b *domain.Branch) *Branch {
	return &Branch{
		ID:           b.ID,
		Name:         b.Name,
		RepositoryID: b.RepositoryID,
		Head:         b.Head,
	}
}
