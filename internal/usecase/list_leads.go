package usecase

import (
	"context"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

const leadsPageSize = 10

type ListLeadsInput struct {
	AccountID string
	Page      int
	Search    string
	Status    string
}

type ListLeadsOutput struct {
	Leads []entity.Lead `json:"leads"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
}

type ListLeadsUseCase struct {
	Leads LeadRepositoryInterface
}

func NewListLeadsUseCase(leads LeadRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{Leads: leads}
}

// Execute returns one owner-scoped page, newest first. Search matches company,
// contact, address and notes case-insensitively.
func (uc *ListLeadsUseCase) Execute(ctx context.Context, input ListLeadsInput) (*ListLeadsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}

	leads, total, err := uc.Leads.List(ctx, LeadFilter{
		AccountID: input.AccountID,
		Search:    input.Search,
		Status:    input.Status,
		Page:      page,
		PerPage:   leadsPageSize,
	})
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list leads: " + err.Error()}
	}

	pages := total / leadsPageSize
	if total%leadsPageSize != 0 {
		pages++
	}

	if leads == nil {
		leads = []entity.Lead{}
	}
	return &ListLeadsOutput{Leads: leads, Total: total, Page: page, Pages: pages}, nil
}
