package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

const (
	otpTTL         = 30 * time.Minute
	maxOTPAttempts = 5
)

// generateOTP returns a 6-digit code uniform over 100000-999999.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// verifyAccountOTP runs the shared check sequence for the registration and
// reset paths: lockout first, then code match, then expiry. A mismatch
// increments the persisted attempt counter; an expired-but-correct code does
// not count as an attempt. The lockout is terminal until a new code is issued.
func verifyAccountOTP(ctx context.Context, accounts AccountRepositoryInterface, account *entity.Account, supplied string) error {
	if account.OTPAttempts >= maxOTPAttempts {
		return &DomainError{Code: CodeLocked, Message: "Too many attempts. Request new OTP."}
	}

	if account.OTPCode == "" || account.OTPCode != supplied {
		if err := accounts.IncrementOTPAttempts(ctx, account.ID); err != nil {
			return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to record OTP attempt: " + err.Error()}
		}
		return &DomainError{Code: CodeValidation, Message: "Invalid OTP"}
	}

	if account.OTPExpiresAt == nil || time.Now().After(*account.OTPExpiresAt) {
		return &DomainError{Code: CodeValidation, Message: "OTP expired"}
	}

	return nil
}

// verifyCaptcha applies the optional bot-mitigation gate. A nil verifier means
// no site-verification secret is configured and the gate is inactive.
func verifyCaptcha(ctx context.Context, verifier CaptchaVerifierInterface, token, remoteIP string) error {
	if verifier == nil {
		return nil
	}
	if err := verifier.Verify(ctx, token, remoteIP); err != nil {
		return &DomainError{Code: CodeValidation, Message: "captcha verification failed: " + err.Error()}
	}
	return nil
}
