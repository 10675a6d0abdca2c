package usecase

import (
	"context"
	"strings"
	"time"
)

type ForgotPasswordInput struct {
	Email        string `json:"email"`
	CaptchaToken string `json:"captcha_token,omitempty"`
	RemoteIP     string `json:"-"`
}

type ForgotPasswordOutput struct {
	Message string `json:"message"`
}

type ForgotPasswordUseCase struct {
	Accounts AccountRepositoryInterface
	Mail     MailSenderInterface
	Captcha  CaptchaVerifierInterface
}

func NewForgotPasswordUseCase(accounts AccountRepositoryInterface, mail MailSenderInterface, captcha CaptchaVerifierInterface) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{Accounts: accounts, Mail: mail, Captcha: captcha}
}

// Execute issues a password-reset OTP. The verification flag is untouched;
// only the OTP state is replaced.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Email is required"}
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

	code, err := generateOTP()
	if err != nil {
		return nil, &TechnicalError{Code: "OTP_ERROR", Message: "failed to generate OTP: " + err.Error()}
	}
	if err := uc.Accounts.SetOTP(ctx, account.ID, code, time.Now().Add(otpTTL)); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to store OTP: " + err.Error()}
	}

	if err := uc.Mail.SendPasswordResetOTP(account.Email, code); err != nil {
		return nil, &DomainError{Code: CodeUpstreamFailed, Message: "failed to send reset email"}
	}

	return &ForgotPasswordOutput{Message: "OTP sent to email"}, nil
}
