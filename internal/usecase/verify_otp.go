package usecase

import (
	"context"
	"strings"
)

type VerifyOTPInput struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type VerifyOTPOutput struct {
	Message string `json:"message"`
}

type VerifyOTPUseCase struct {
	Accounts AccountRepositoryInterface
}

func NewVerifyOTPUseCase(accounts AccountRepositoryInterface) *VerifyOTPUseCase {
	return &VerifyOTPUseCase{Accounts: accounts}
}

// Execute confirms a registration. On success the account is promoted to
// verified and code, expiry and attempts are cleared in one step.
func (uc *VerifyOTPUseCase) Execute(ctx context.Context, input VerifyOTPInput) (*VerifyOTPOutput, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.OTP) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Email and OTP are required"}
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

	if err := uc.Accounts.MarkVerified(ctx, account.ID); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to mark account verified: " + err.Error()}
	}

	return &VerifyOTPOutput{Message: "Verified successfully"}, nil
}
