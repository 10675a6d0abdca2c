package usecase

import (
	"context"
)

type DeleteLeadInput struct {
	AccountID string
	LeadID    string
}

type DeleteLeadUseCase struct {
	Leads LeadRepositoryInterface
}

func NewDeleteLeadUseCase(leads LeadRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Leads: leads}
}

func (uc *DeleteLeadUseCase) Execute(ctx context.Context, input DeleteLeadInput) error {
	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up lead: " + err.Error()}
	}
	if lead == nil {
		return &DomainError{Code: CodeNotFound, Message: "Lead not found"}
	}
	if lead.AccountID != input.AccountID {
		return &DomainError{Code: CodeForbidden, Message: "You can only delete leads you created"}
	}

	if err := uc.Leads.Delete(ctx, lead.ID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to delete lead: " + err.Error()}
	}
	return nil
}
