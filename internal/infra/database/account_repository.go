package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

const uniqueViolation = "23505"

type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

const accountColumns = `id, name, email, password_hash, is_verified, profile_photo, otp, otp_expires_at, otp_attempts, created_at, updated_at`

func scanAccount(row *sql.Row) (*entity.Account, error) {
	var a entity.Account
	var otp sql.NullString
	var otpExpiresAt sql.NullTime

	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.IsVerified,
		&a.ProfilePhoto, &otp, &otpExpiresAt, &a.OTPAttempts, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.OTPCode = otp.String
	if otpExpiresAt.Valid {
		t := otpExpiresAt.Time
		a.OTPExpiresAt = &t
	}
	return &a, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// UpsertPending inserts a new unverified account or overwrites the pending
// registration fields of the existing row with the same email. The caller has
// already rejected verified accounts, so the overwrite can be unconditional.
func (r *AccountRepository) UpsertPending(ctx context.Context, account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, is_verified, otp, otp_expires_at, otp_attempts, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, 0, NOW(), NOW())
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = EXCLUDED.password_hash,
			is_verified = FALSE,
			otp = EXCLUDED.otp,
			otp_expires_at = EXCLUDED.otp_expires_at,
			otp_attempts = 0,
			updated_at = NOW()
		RETURNING id
	`

	var otpExpiresAt interface{}
	if account.OTPExpiresAt != nil {
		otpExpiresAt = *account.OTPExpiresAt
	}

	err := r.DB.QueryRowContext(ctx, query,
		account.ID,
		account.Name,
		account.Email,
		account.PasswordHash,
		nullIfEmpty(account.OTPCode),
		otpExpiresAt,
	).Scan(&account.ID)

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
		return entity.ErrEmailAlreadyExists
	}
	return err
}

func (r *AccountRepository) SetOTP(ctx context.Context, id, code string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts
		SET otp = $2, otp_expires_at = $3, otp_attempts = 0, updated_at = NOW()
		WHERE id = $1`, id, code, expiresAt)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AccountRepository) IncrementOTPAttempts(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts
		SET otp_attempts = otp_attempts + 1, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts
		SET is_verified = TRUE, otp = NULL, otp_expires_at = NULL, otp_attempts = 0, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts
		SET password_hash = $2, otp = NULL, otp_expires_at = NULL, otp_attempts = 0, updated_at = NOW()
		WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id, name, profilePhoto string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE accounts
		SET name = $2, profile_photo = $3, updated_at = NOW()
		WHERE id = $1`, id, name, profilePhoto)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
