package usecase

import (
	"context"
	"strings"
	"time"
)

type ResendVerificationOTPInput struct {
	Email string `json:"email"`
}

type ResendVerificationOTPOutput struct {
	Message string `json:"message"`
}

type ResendVerificationOTPUseCase struct {
	Accounts AccountRepositoryInterface
	Mail     MailSenderInterface
}

func NewResendVerificationOTPUseCase(accounts AccountRepositoryInterface, mail MailSenderInterface) *ResendVerificationOTPUseCase {
	return &ResendVerificationOTPUseCase{Accounts: accounts, Mail: mail}
}

// Execute issues a fresh verification code for a pending registration. Issuing
// a new code is also the only way out of an attempt lockout.
func (uc *ResendVerificationOTPUseCase) Execute(ctx context.Context, input ResendVerificationOTPInput) (*ResendVerificationOTPOutput, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Email is required"}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	account, err := uc.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if account == nil {
		return nil, &DomainError{Code: CodeNotFound, Message: "User not found"}
	}
	if account.IsVerified {
		return nil, &DomainError{Code: CodeConflict, Message: "Account is already verified"}
	}

	code, err := generateOTP()
	if err != nil {
		return nil, &TechnicalError{Code: "OTP_ERROR", Message: "failed to generate OTP: " + err.Error()}
	}
	if err := uc.Accounts.SetOTP(ctx, account.ID, code, time.Now().Add(otpTTL)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to store OTP: " + err.Error()}
	}

	if err := uc.Mail.SendVerificationOTP(account.Email, code); err != nil {
		return nil, &DomainError{Code: CodeUpstreamFailed, Message: "failed to send verification email"}
	}

	return &ResendVerificationOTPOutput{Message: "OTP sent to email"}, nil
}
