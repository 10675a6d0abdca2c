package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/ingest"
)

// UpdateLeadInput uses pointers so "field absent" and "field set to empty" are
// distinguishable, the same way a partial JSON body behaves.
type UpdateLeadInput struct {
	AccountID string `json:"-"`
	LeadID    string `json:"-"`

	CompanyName   *string `json:"company_name"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
	FollowUpAt    *string `json:"follow_up_at"`
}

type UpdateLeadUseCase struct {
	Leads LeadRepositoryInterface
}

func NewUpdateLeadUseCase(leads LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads}
}

func (uc *UpdateLeadUseCase) Execute(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up lead: " + err.Error()}
	}
	if lead == nil {
		return nil, &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}
	if lead.AccountID != input.AccountID {
		return nil, &DomainError{Code: CodeForbidden, Message: "You can only update leads you created"}
	}

	if input.CompanyName != nil {
		lead.CompanyName = strings.TrimSpace(*input.CompanyName)
	}
	if input.Address != nil {
		lead.Address = strings.TrimSpace(*input.Address)
	}
	if input.Notes != nil {
		lead.Notes = strings.TrimSpace(*input.Notes)
	}
	if input.Status != nil {
		// Unrecognized status text leaves the stored value alone.
		if status, ok := ingest.MapStatus(*input.Status); ok {
			lead.Status = status
		}
	}
	if input.ContactNumber != nil {
		contact := ingest.CanonicalContactNumber(*input.ContactNumber)
		if contact == "" {
			return nil, &DomainError{Code: CodeValidation, Message: "Phone number is required"}
		}
		lead.ContactNumber = contact
	}
	if input.FollowUpAt != nil {
		if t, ok := ingest.ParseFollowUpTime(*input.FollowUpAt); ok {
			lead.FollowUpAt = &t
		} else {
			lead.FollowUpAt = nil
		}
		// Any follow-up change re-arms the reminder.
		lead.FollowUpReminderSent = false
	}

	if err := uc.Leads.Update(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrDuplicateContact) {
			return nil, &DomainError{Code: CodeConflict, Message: "Phone number " + lead.ContactNumber + " already exists in your leads"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update lead: " + err.Error()}
	}

	return lead, nil
}
