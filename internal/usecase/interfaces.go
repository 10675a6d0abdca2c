package usecase

import (
	"context"
	"time"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/infra/queue"
)

// Repository contracts. Lookups return (nil, nil) when no row matches so the
// usecases can distinguish "absent" from storage failures.

type AccountRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByID(ctx context.Context, id string) (*entity.Account, error)

	// UpsertPending inserts a fresh unverified account or overwrites the
	// pending fields (name, password, OTP state) of an existing unverified
	// row with the same email. The stored row's id is written back.
	UpsertPending(ctx context.Context, account *entity.Account) error

	// SetOTP stores a new code and expiry and resets the attempt counter.
	SetOTP(ctx context.Context, id, code string, expiresAt time.Time) error
	IncrementOTPAttempts(ctx context.Context, id string) error

	// MarkVerified promotes the account and clears code, expiry and attempts.
	MarkVerified(ctx context.Context, id string) error

	// UpdatePassword swaps the credential and clears any OTP state left over
	// from the path that authorized the change.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateProfile(ctx context.Context, id, name, profilePhoto string) error
}

type LeadFilter struct {
	AccountID string
	Search    string
	Status    string
	Page      int
	PerPage   int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *entity.Lead) error
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
	ExistsByContact(ctx context.Context, accountID, contactNumber string) (bool, error)
	List(ctx context.Context, filter LeadFilter) ([]entity.Lead, int, error)
}

type MailSenderInterface interface {
	SendVerificationOTP(to, code string) error
	SendPasswordResetOTP(to, code string) error
}

type TokenIssuerInterface interface {
	Issue(accountID string) (string, error)
}

// CaptchaVerifierInterface is the optional bot-mitigation gate. A nil verifier
// on a usecase means the gate is inactive.
type CaptchaVerifierInterface interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type EventPublisherInterface interface {
	PublishImportCompleted(ctx context.Context, payload queue.ImportCompletedPayload) error
}
