package database

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/usecase"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, account_id, company_name, contact_number, address, notes, status, follow_up_at, follow_up_reminder_sent, created_at, updated_at`

func scanLead(scan func(dest ...interface{}) error) (*entity.Lead, error) {
	var l entity.Lead
	var followUpAt sql.NullTime

	err := scan(&l.ID, &l.AccountID, &l.CompanyName, &l.ContactNumber, &l.Address,
		&l.Notes, &l.Status, &followUpAt, &l.FollowUpReminderSent, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if followUpAt.Valid {
		t := followUpAt.Time
		l.FollowUpAt = &t
	}
	return &l, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, account_id, company_name, contact_number, address, notes, status, follow_up_at, follow_up_reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, NOW(), NOW())
	`

	var followUpAt interface{}
	if lead.FollowUpAt != nil {
		followUpAt = *lead.FollowUpAt
	}

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.AccountID,
		lead.CompanyName,
		lead.ContactNumber,
		lead.Address,
		lead.Notes,
		string(lead.Status),
		followUpAt,
	)

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
		return entity.ErrDuplicateContact
	}
	return err
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads
		SET company_name = $2, contact_number = $3, address = $4, notes = $5,
			status = $6, follow_up_at = $7, follow_up_reminder_sent = $8, updated_at = NOW()
		WHERE id = $1
	`

	var followUpAt interface{}
	if lead.FollowUpAt != nil {
		followUpAt = *lead.FollowUpAt
	}

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.CompanyName,
		lead.ContactNumber,
		lead.Address,
		lead.Notes,
		string(lead.Status),
		followUpAt,
		lead.FollowUpReminderSent,
	)

	var pgErr *pq.Error
	if errors.As(err, &pgErr) && string(pgErr.Code) == uniqueViolation {
		return entity.ErrDuplicateContact
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *LeadRepository) ExistsByContact(ctx context.Context, accountID, contactNumber string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM leads WHERE account_id = $1 AND contact_number = $2)`,
		accountID, contactNumber).Scan(&exists)
	return exists, err
}

// List returns one owner-scoped page plus the total match count. Search is a
// case-insensitive substring match over company, contact, address and notes.
func (r *LeadRepository) List(ctx context.Context, filter usecase.LeadFilter) ([]entity.Lead, int, error) {
	where := `WHERE account_id = $1`
	args := []interface{}{filter.AccountID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := strconv.Itoa(len(args))
		where += ` AND (company_name ILIKE $` + p + ` OR contact_number ILIKE $` + p +
			` OR address ILIKE $` + p + ` OR notes ILIKE $` + p + `)`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += ` AND status = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM leads `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	args = append(args, filter.PerPage, offset)
	query := `SELECT ` + leadColumns + ` FROM leads ` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, *lead)
	}
	return leads, total, rows.Err()
}

// FindDueReminders returns callback leads whose follow-up time falls inside
// the lookahead window and whose reminder has not gone out yet.
func (r *LeadRepository) FindDueReminders(ctx context.Context, due time.Time) ([]entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+leadColumns+` FROM leads
		WHERE status = $1
		  AND follow_up_at IS NOT NULL
		  AND follow_up_at <= $2
		  AND follow_up_reminder_sent = FALSE
		ORDER BY follow_up_at`, string(entity.StatusCallback), due)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// MarkReminderSent flips the sent flag, but only if it is still unset, so a
// racing sweep loses cleanly. Returns whether this call won the flip.
func (r *LeadRepository) MarkReminderSent(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE leads
		SET follow_up_reminder_sent = TRUE, updated_at = NOW()
		WHERE id = $1 AND follow_up_reminder_sent = FALSE`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
