package usecase

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type ResetPasswordInput struct {
	Email           string `json:"email"`
	OTP             string `json:"otp"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
	CaptchaToken    string `json:"captcha_token,omitempty"`
	RemoteIP        string `json:"-"`
}

type ResetPasswordOutput struct {
	Message string `json:"message"`
}

type ResetPasswordUseCase struct {
	Accounts AccountRepositoryInterface
	Captcha  CaptchaVerifierInterface
}

func NewResetPasswordUseCase(accounts AccountRepositoryInterface, captcha CaptchaVerifierInterface) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{Accounts: accounts, Captcha: captcha}
}

// Execute completes a forgotten-password reset: same OTP sequence as
// registration confirmation, then the credential swap. Storing the new
// password clears the OTP state.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	}
	if strings.TrimSpace(input.OTP) == "" {
		errs = append(errs, ValidationError{"otp", "is required"})
	}
	if input.NewPassword != input.ConfirmPassword {
		errs = append(errs, ValidationError{"confirm_password", "does not match new password"})
	}
	if err := ValidatePasswordStrength(input.NewPassword); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if err := verifyCaptcha(ctx, uc.Captcha, input.CaptchaToken, input.RemoteIP); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	account, err := uc.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return nil, &DomainError{Code: CodeNotFound, Message: "User not found"}
	}

	if err := verifyAccountOTP(ctx, uc.Accounts, account, strings.TrimSpace(input.OTP)); err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.NewPassword)) == nil {
		return nil, &DomainError{Code: CodeValidation, Message: "New password must be different from current password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "failed to hash password: " + err.Error()}
	}
	if err := uc.Accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update password: " + err.Error()}
	}

	return &ResetPasswordOutput{Message: "Password reset successfully"}, nil
}
