package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/cgsoftworks/leadbook/internal/entity"
	"github.com/cgsoftworks/leadbook/internal/ingest"
)

type CreateLeadInput struct {
	AccountID     string `json:"-"`
	CompanyName   string `json:"company_name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	FollowUpAt    string `json:"follow_up_at"`
}

type CreateLeadUseCase struct {
	Leads LeadRepositoryInterface
}

func NewCreateLeadUseCase(leads LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	contact := ingest.CanonicalContactNumber(input.ContactNumber)
	if contact == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "Phone number is required"}
	}

	exists, err := uc.Leads.ExistsByContact(ctx, input.AccountID, contact)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to check for duplicates: " + err.Error()}
	}
	if exists {
		return nil, &DomainError{Code: CodeConflict, Message: "Phone number " + contact + " already exists in your leads"}
	}

	lead := entity.NewLead(input.AccountID)
	lead.CompanyName = strings.TrimSpace(input.CompanyName)
	lead.ContactNumber = contact
	lead.Address = strings.TrimSpace(input.Address)
	lead.Notes = strings.TrimSpace(input.Notes)
	lead.Status = ingest.NormalizeStatus(input.Status)
	if t, ok := ingest.ParseFollowUpTime(input.FollowUpAt); ok {
		lead.FollowUpAt = &t
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrDuplicateContact) {
			return nil, &DomainError{Code: CodeConflict, Message: "Phone number " + contact + " already exists in your leads"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create lead: " + err.Error()}
	}

	return lead, nil
}
