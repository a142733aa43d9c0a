package mocks

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

// EmailStore mock
type EmailStore struct {
	mock.Mock
}

func (m *EmailStore) SaveEmail(ctx context.Context, email domain.Email) (*domain.Email, error) {
	args := m.Called(ctx, email)
	saved, _ := args.Get(0).(*domain.Email)
	return saved, args.Error(1)
}

func (m *EmailStore) EmailByAddress(ctx context.Context, address string) (*domain.Email, error) {
	args := m.Called(ctx, address)
	email, _ := args.Get(0).(*domain.Email)
	return email, args.Error(1)
}

func (m *EmailStore) AllEmails(ctx context.Context) ([]domain.Email, error) {
	args := m.Called(ctx)
	emails, _ := args.Get(0).([]domain.Email)
	return emails, args.Error(1)
}
