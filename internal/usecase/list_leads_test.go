package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func TestListLeads_DefaultsPageAndComputesPages(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewListLeadsUseCase(leads)

	leads.On("List", mock.Anything, LeadFilter{
		AccountID: "acc-1", Page: 1, PerPage: leadsPageSize,
	}).Return([]entity.Lead{{ID: "lead-1"}}, 21, nil)

	out, err := uc.Execute(context.Background(), ListLeadsInput{AccountID: "acc-1", Page: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 21, out.Total)
	assert.Equal(t, 3, out.Pages)
	assert.Len(t, out.Leads, 1)
}

func TestListLeads_EmptyResultIsNotNil(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewListLeadsUseCase(leads)

	leads.On("List", mock.Anything, mock.Anything).Return(nil, 0, nil)

	out, err := uc.Execute(context.Background(), ListLeadsInput{AccountID: "acc-1", Page: 5})

	assert.NoError(t, err)
	assert.NotNil(t, out.Leads)
	assert.Empty(t, out.Leads)
	assert.Equal(t, 0, out.Pages)
}

func TestListLeads_PassesSearchAndStatusFilter(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewListLeadsUseCase(leads)

	leads.On("List", mock.Anything, LeadFilter{
		AccountID: "acc-1", Search: "acme", Status: "callback", Page: 2, PerPage: leadsPageSize,
	}).Return([]entity.Lead{}, 0, nil)

	_, err := uc.Execute(context.Background(), ListLeadsInput{
		AccountID: "acc-1", Page: 2, Search: "acme", Status: "callback",
	})

	assert.NoError(t, err)
	leads.AssertExpectations(t)
}
