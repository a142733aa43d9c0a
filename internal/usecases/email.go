package usecases

import (
	"context"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository"
	"github.com/just-nibble/git-service/pkg/errcodes"
)

type EmailUsecase interface {
	GetAll(ctx context.Context) ([]domain.Email, error)
}

type emailUsecase struct {
	emailStore repository.EmailStore
}

func NewEmailUsecase(emailStore repository.EmailStore) EmailUsecase {
	return &emailUsecase{emailStore: emailStore}
}

func (u *emailUsecase) GetAll(ctx context.Context) ([]domain.Email, error) {
	emails, err := u.emailStore.AllEmails(ctx)
	if err != nil {
		return nil, errcodes.DBError(err)
	}
	return emails, nil
}
