package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/infra/queue"
	"github.com/cgsoftworks/leadbook/internal/ingest"
)

type BulkImportInput struct {
	AccountID string
	FileName  string
	Rows      [][]string
}

type BulkImportLeadsUseCase struct {
	Leads    LeadRepositoryInterface
	Accounts AccountRepositoryInterface
	Events   EventPublisherInterface
}

func NewBulkImportLeadsUseCase(leads LeadRepositoryInterface, accounts AccountRepositoryInterface, events EventPublisherInterface) *BulkImportLeadsUseCase {
	return &BulkImportLeadsUseCase{Leads: leads, Accounts: accounts, Events: events}
}

// Execute drives one spreadsheet import. Rows are processed strictly in order
// so the duplicate check sees every row accepted earlier in the same batch;
// a failing row is recorded in the report and never aborts the rest.
func (uc *BulkImportLeadsUseCase) Execute(ctx context.Context, input BulkImportInput) (*entity.ImportReport, error) {
	headerIdx, err := ingest.DetectHeaderRow(input.Rows)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: "No usable rows found in file"}
	}

	headers := make([]string, len(input.Rows[headerIdx]))
	for i, h := range input.Rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}
	colIdx := ingest.MapColumns(headers)

	// Blank rows are dropped before numbering, matching the 1-based
	// spreadsheet convention (+1 for the header row, +1 for 1-basing).
	type numberedRow struct {
		cells  []string
		number int
	}
	var dataRows []numberedRow
	for _, cells := range input.Rows[headerIdx+1:] {
		if rowIsBlank(cells) {
			continue
		}
		dataRows = append(dataRows, numberedRow{cells: cells, number: headerIdx + len(dataRows) + 2})
	}

	report := &entity.ImportReport{Failed: []entity.ImportFailure{}}
	seen := make(map[string]struct{})

	for _, row := range dataRows {
		candidate := ingest.ExtractCandidate(headers, row.cells, colIdx)

		reject := func(reason string) {
			report.FailedCount++
			report.Failed = append(report.Failed, entity.ImportFailure{
				RowNumber: row.number,
				Reason:    reason,
				Data:      ingest.RowData(headers, row.cells),
			})
		}

		if candidate.ContactNumber == "" {
			reject("Phone number is required")
			continue
		}
		if _, dup := seen[candidate.ContactNumber]; dup {
			reject("Duplicate phone number in this upload: " + candidate.ContactNumber)
			continue
		}

		exists, err := uc.Leads.ExistsByContact(ctx, input.AccountID, candidate.ContactNumber)
		if err != nil {
			reject("failed to check for duplicates: " + err.Error())
			continue
		}
		if exists {
			reject("Phone number already exists: " + candidate.ContactNumber)
			continue
		}

		lead := entity.NewLead(input.AccountID)
		lead.CompanyName = candidate.CompanyName
		lead.ContactNumber = candidate.ContactNumber
		lead.Address = candidate.Address
		lead.Notes = candidate.Notes
		lead.Status = candidate.Status
		lead.FollowUpAt = candidate.FollowUpAt

		if err := uc.Leads.Create(ctx, lead); err != nil {
			reject(err.Error())
			continue
		}

		seen[candidate.ContactNumber] = struct{}{}
		report.SuccessCount++
	}

	uc.publishCompleted(ctx, input, report)

	return report, nil
}

// publishCompleted emits the import-completed event consumed by the summary
// mail worker. The import itself already succeeded, so a publish failure is
// logged and swallowed.
func (uc *BulkImportLeadsUseCase) publishCompleted(ctx context.Context, input BulkImportInput, report *entity.ImportReport) {
	if uc.Events == nil {
		return
	}

	owner, err := uc.Accounts.FindByID(ctx, input.AccountID)
	if err != nil || owner == nil {
		zap.L().Warn("import event skipped: owner lookup failed", zap.String("account_id", input.AccountID), zap.Error(err))
		return
	}

	payload := queue.ImportCompletedPayload{
		AccountID:    owner.ID,
		Email:        owner.Email,
		Name:         owner.Name,
		FileName:     input.FileName,
		SuccessCount: report.SuccessCount,
		FailedCount:  report.FailedCount,
		Failed:       report.Failed,
	}
	if err := uc.Events.PublishImportCompleted(ctx, payload); err != nil {
		zap.L().Warn("failed to publish import event", zap.String("account_id", input.AccountID), zap.Error(err))
	}
}

func rowIsBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
