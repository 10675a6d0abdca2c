package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func settingsAccount(t *testing.T, password string) *entity.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &entity.Account{
		ID:           "acc-1",
		Name:         "Tester",
		Email:        "tester@example.com",
		PasswordHash: string(hash),
		IsVerified:   true,
	}
}

func TestUpdatePassword_RequiresCorrectCurrentPassword(t *testing.T) {
	accounts := new(MockAccountRepository)
	uc := NewAccountSettingsUseCase(accounts)

	accounts.On("FindByID", mock.Anything, "acc-1").Return(settingsAccount(t, "Current!pass1"), nil)

	err := uc.UpdatePassword(context.Background(), UpdatePasswordInput{
		AccountID:       "acc-1",
		CurrentPassword: "wrong-password",
		NewPassword:     "Fresh!pass123",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Current password is incorrect", domainErr.Message)
	accounts.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePassword_MustDifferFromCurrent(t *testing.T) {
	accounts := new(MockAccountRepository)
	uc := NewAccountSettingsUseCase(accounts)

	accounts.On("FindByID", mock.Anything, "acc-1").Return(settingsAccount(t, "Current!pass1"), nil)

	err := uc.UpdatePassword(context.Background(), UpdatePasswordInput{
		AccountID:       "acc-1",
		CurrentPassword: "Current!pass1",
		NewPassword:     "Current!pass1",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "New password must be different from current password", domainErr.Message)
}

func TestUpdatePassword_Success(t *testing.T) {
	accounts := new(MockAccountRepository)
	uc := NewAccountSettingsUseCase(accounts)

	accounts.On("FindByID", mock.Anything, "acc-1").Return(settingsAccount(t, "Current!pass1"), nil)
	accounts.On("UpdatePassword", mock.Anything, "acc-1", mock.Anything).Return(nil)

	err := uc.UpdatePassword(context.Background(), UpdatePasswordInput{
		AccountID:       "acc-1",
		CurrentPassword: "Current!pass1",
		NewPassword:     "Fresh!pass123",
	})

	assert.NoError(t, err)
	accounts.AssertExpectations(t)
}

func TestUpdateProfile_EmptyFieldsKeepStoredValues(t *testing.T) {
	accounts := new(MockAccountRepository)
	uc := NewAccountSettingsUseCase(accounts)

	stored := settingsAccount(t, "Current!pass1")
	stored.ProfilePhoto = "https://example.com/photo.png"

	accounts.On("FindByID", mock.Anything, "acc-1").Return(stored, nil)
	accounts.On("UpdateProfile", mock.Anything, "acc-1", "Tester", "https://example.com/photo.png").Return(nil)

	out, err := uc.UpdateProfile(context.Background(), UpdateProfileInput{
		AccountID: "acc-1",
		Name:      "   ",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Tester", out.User.Name)
	accounts.AssertExpectations(t)
}
