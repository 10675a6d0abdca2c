package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

type RegisterAccountInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captcha_token,omitempty"`
	RemoteIP     string `json:"-"`
}

type RegisterAccountOutput struct {
	Message string `json:"message"`
}

type RegisterAccountUseCase struct {
	Accounts AccountRepositoryInterface
	Mail     MailSenderInterface
	Captcha  CaptchaVerifierInterface
}

func NewRegisterAccountUseCase(accounts AccountRepositoryInterface, mail MailSenderInterface, captcha CaptchaVerifierInterface) *RegisterAccountUseCase {
	return &RegisterAccountUseCase{Accounts: accounts, Mail: mail, Captcha: captcha}
}

// Execute starts a registration: it issues an OTP and emails it. A verified
// account with the same email rejects the call; an unverified one has its
// pending fields overwritten, so abandoned registrations never block an email.
func (uc *RegisterAccountUseCase) Execute(ctx context.Context, input RegisterAccountInput) (*RegisterAccountOutput, error) {
	var errs []ValidationError
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if err := verifyCaptcha(ctx, uc.Captcha, input.CaptchaToken, input.RemoteIP); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account: " + err.Error()}
	}
	if existing != nil && existing.IsVerified {
		return nil, &DomainError{Code: CodeConflict, Message: "User already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "HASH_ERROR", Message: "failed to hash password: " + err.Error()}
	}

	code, err := generateOTP()
	if err != nil {
		return nil, &TechnicalError{Code: "OTP_ERROR", Message: "failed to generate OTP: " + err.Error()}
	}

	expiresAt := time.Now().Add(otpTTL)
	account := entity.NewAccount(strings.TrimSpace(input.Name), email, string(hash))
	account.OTPCode = code
	account.OTPExpiresAt = &expiresAt

	if err := uc.Accounts.UpsertPending(ctx, account); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to store registration: " + err.Error()}
	}

	if err := uc.Mail.SendVerificationOTP(account.Email, code); err != nil {
		return nil, &DomainError{Code: CodeUpstreamFailed, Message: "failed to send verification email"}
	}

	return &RegisterAccountOutput{Message: "OTP sent to email"}, nil
}
