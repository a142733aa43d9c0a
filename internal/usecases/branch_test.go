package usecases

import (
	"context"
	"testing"

	"github.com/just-nibble/git-service/internal/domain"
	"github.com/just-nibble/git-service/internal/repository/mocks"
	"github.com/just-nibble/git-service/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBranchUsecase_GetByRepository(t *testing.T) {
	mockBranchStore := new(mocks.BranchStore)
	mockBranchStore.On("BranchesByRepository", mock.Anything, "r1").
		Return([]domain.Branch{{ID: "b1", Name: "main", RepositoryID: "r1", Head: "c2"}}, nil)

	uc := NewBranchUsecase(mockBranchStore)

	branches, err := uc.GetByRepository(context.TODO(), "r1")
	assert.NoError(t, err)
	assert.Len(t, branches, 1)
	assert.Equal(t, "c2", branches[0].Head)
	mockBranchStore.AssertExpectations(t)
}

func TestBranchUsecase_Delete_NotFound(t *testing.T) {
	mockBranchStore := new(mocks.BranchStore)
	mockBranchStore.On("DeleteBranch", mock.Anything, "b9").Return(nil, errcodes.ErrNoRecordFound)

	uc := NewBranchUsecase(mockBranchStore)

	branch, err := uc.Delete(context.TODO(), "b9")
	assert.Nil(t, branch)
	assert.Equal(t, errcodes.KindNotFound, errcodes.KindOf(err))
}

func TestEmailUsecase_GetAll(t *testing.T) {
	mockEmailStore := new(mocks.EmailStore)
	mockEmailStore.On("AllEmails", mock.Anything).Return([]domain.Email{domain.NewEmail("jane@example.com")}, nil)

	uc := NewEmailUsecase(mockEmailStore)

	emails, err := uc.GetAll(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, domain.HashEmail("jane@example.com"), emails[0].HashMD5)
}
