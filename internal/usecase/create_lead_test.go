package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func TestCreateLead_CanonicalizesContactAndStatus(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(leads)

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(false, nil)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ContactNumber == "9876543210" &&
			l.CompanyName == "Acme" &&
			l.Status == entity.StatusNotReceived
	})).Return(nil)

	lead, err := uc.Execute(context.Background(), CreateLeadInput{
		AccountID:     "acc-1",
		CompanyName:   "  Acme  ",
		ContactNumber: " 98765 43210 ",
		Status:        "not recived",
	})

	assert.NoError(t, err)
	assert.Equal(t, "9876543210", lead.ContactNumber)
	leads.AssertExpectations(t)
}

func TestCreateLead_MissingPhone(t *testing.T) {
	uc := NewCreateLeadUseCase(new(MockLeadRepository))

	_, err := uc.Execute(context.Background(), CreateLeadInput{
		AccountID:   "acc-1",
		CompanyName: "Acme",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Phone number is required", domainErr.Message)
}

func TestCreateLead_DuplicateContact(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(leads)

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(true, nil)

	_, err := uc.Execute(context.Background(), CreateLeadInput{
		AccountID:     "acc-1",
		ContactNumber: "9876543210",
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
	assert.Equal(t, "Phone number 9876543210 already exists in your leads", domainErr.Message)
}

func TestCreateLead_UnknownStatusFallsBackToSentinel(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(leads)

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(false, nil)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Status == entity.StatusUnselected
	})).Return(nil)

	_, err := uc.Execute(context.Background(), CreateLeadInput{
		AccountID:     "acc-1",
		ContactNumber: "9876543210",
		Status:        "warm prospect",
	})

	assert.NoError(t, err)
	leads.AssertExpectations(t)
}
