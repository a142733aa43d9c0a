package repository

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GormEmailStore is a GORM-based implementation of EmailStore
type GormEmailStore struct {
	db *gorm.DB
}

// NewGormEmailStore initializes a new GormEmailStore
func NewGormEmailStore(db *gorm.DB) EmailStore {
	return &GormEmailStore{db: db}
}

// SaveEmail registers an address. An address that is already registered
// yields errcodes.ErrDuplicate and leaves the stored row untouched.
func (s *GormEmailStore) SaveEmail(ctx context.Context, email domain.Email) (*domain.Email, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	dbEmail := Email{Email: email.Email, HashMD5: email.HashMD5}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Email{}).Where("email = ?", email.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errors.Wrapf(errcodes.ErrDuplicate, "email %s", email.Email)
		}
		return tx.Create(&dbEmail).Error
	})
	if errors.Is(err, errcodes.ErrDuplicate) {
		return nil, err
	}
	if err != nil {
		return nil, storeError(err, "save email")
	}
	return dbEmail.ToDomain(), nil
}

func (s *GormEmailStore) EmailByAddress(ctx context.Context, address string) (*domain.Email, error) {
	if ctx.Err() == context.Canceled {
		return nil, errcodes.ErrContextCancelled
	}

	var email Email
	if err := s.db.WithContext(ctx).Where("email = ?", address).First(&email).Error; err != nil {
		return nil, storeError(err, "find email")
	}
	return email.ToDomain(), nil
}

func (s *GormEmailStore) AllEmails(ctx context.Context) ([]domain.Email, error) {
	var dbEmails []Email
	if err := s.db.WithContext(ctx).Order("email").Find(&dbEmails).Error; err != nil {
		return nil, storeError(err, "list emails")
	}

	emails := make([]domain.Email, 0, len(dbEmails))
	for _, e := range dbEmails {
		emails = append(emails, *e.ToDomain())
	}
	return emails, nil
}
