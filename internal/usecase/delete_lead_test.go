package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func TestDeleteLead_Success(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewDeleteLeadUseCase(leads)

	leads.On("FindByID", mock.Anything, "lead-1").
		Return(&entity.Lead{ID: "lead-1", AccountID: "acc-1"}, nil)
	leads.On("Delete", mock.Anything, "lead-1").Return(nil)

	err := uc.Execute(context.Background(), DeleteLeadInput{AccountID: "acc-1", LeadID: "lead-1"})

	assert.NoError(t, err)
	leads.AssertExpectations(t)
}

func TestDeleteLead_ForbiddenForOtherOwner(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewDeleteLeadUseCase(leads)

	leads.On("FindByID", mock.Anything, "lead-1").
		Return(&entity.Lead{ID: "lead-1", AccountID: "acc-1"}, nil)

	err := uc.Execute(context.Background(), DeleteLeadInput{AccountID: "acc-other", LeadID: "lead-1"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeForbidden, domainErr.Code)
	leads.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteLead_NotFound(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewDeleteLeadUseCase(leads)

	leads.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	err := uc.Execute(context.Background(), DeleteLeadInput{AccountID: "acc-1", LeadID: "missing"})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeNotFound, domainErr.Code)
}
