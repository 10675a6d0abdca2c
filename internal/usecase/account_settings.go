package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticated profile operations: read profile, change password with the
// current one, update name/photo.

type GetProfileOutput struct {
	User LoginUser `json:"user"`
}

type UpdatePasswordInput struct {
	AccountID       string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type UpdateProfileInput struct {
	AccountID    string `json:"-"`
	Name         string `json:"name"`
	ProfilePhoto string `json:"profile_photo"`
}

type AccountSettingsUseCase struct {
	Accounts AccountRepositoryInterface
}

func NewAccountSettingsUseCase(accounts AccountRepositoryInterface) *AccountSettingsUseCase {
	return &AccountSettingsUseCase{Accounts: accounts}
}

func (uc *AccountSettingsUseCase) GetProfile(ctx context.Context, accountID string) (*GetProfileOutput, error) {
	account, err := uc.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return nil, &DomainError{Code: CodeNotFound, Message: "User not found"}
	}
	return &GetProfileOutput{User: LoginUser{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		ProfilePhoto: account.ProfilePhoto,
	}}, nil
}

func (uc *AccountSettingsUseCase) UpdatePassword(ctx context.Context, input UpdatePasswordInput) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return &DomainError{Code: CodeValidation, Message: "Current password and new password are required"}
	}

	account, err := uc.Accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return &DomainError{Code: CodeNotFound, Message: "User not found"}
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.CurrentPassword)) != nil {
		return &DomainError{Code: CodeValidation, Message: "Current password is incorrect"}
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.NewPassword)) == nil {
		return &DomainError{Code: CodeValidation, Message: "New password must be different from current password"}
	}
	if err := ValidatePasswordStrength(input.NewPassword); err != nil {
		return validationFailed([]ValidationError{err.(ValidationError)})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return &TechnicalError{Code: "HASH_ERROR", Message: "failed to hash password: " + err.Error()}
	}
	if err := uc.Accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update password: " + err.Error()}
	}
	return nil
}

func (uc *AccountSettingsUseCase) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*GetProfileOutput, error) {
	account, err := uc.Accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return nil, &DomainError{Code: CodeNotFound, Message: "User not found"}
	}

	name := account.Name
	if strings.TrimSpace(input.Name) != "" {
		name = strings.TrimSpace(input.Name)
	}
	photo := account.ProfilePhoto
	if input.ProfilePhoto != "" {
		photo = input.ProfilePhoto
	}

	if err := uc.Accounts.UpdateProfile(ctx, account.ID, name, photo); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update profile: " + err.Error()}
	}

	return &GetProfileOutput{User: LoginUser{
		ID:           account.ID,
		Name:         name,
		Email:        account.Email,
		ProfilePhoto: photo,
	}}, nil
}
