package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrDuplicateContact   = errors.New("contact number already exists for this account")
	ErrNotFound           = errors.New("not found")
)

// Account is an authenticated owner of lead records. Registration creates it
// unverified with an OTP pending; it is promoted to verified on a successful
// OTP check and is never hard-deleted.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	IsVerified   bool       `json:"is_verified"`
	ProfilePhoto string     `json:"profile_photo,omitempty"`

	// OTP state. Code and expiry are always set and cleared together;
	// attempts reset to zero whenever a new code is issued.
	OTPCode      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	OTPAttempts  int        `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAccount(name, email, passwordHash string) *Account {
	now := time.Now()
	return &Account{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
