package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func newBulkImportFixture() (*BulkImportLeadsUseCase, *MockLeadRepository, *MockAccountRepository) {
	leads := new(MockLeadRepository)
	accounts := new(MockAccountRepository)
	uc := NewBulkImportLeadsUseCase(leads, accounts, nil)
	return uc, leads, accounts
}

func TestBulkImport_ImportsValidRow(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(false, nil)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.CompanyName == "Acme" &&
			l.ContactNumber == "9876543210" &&
			l.Status == entity.StatusReceived &&
			l.AccountID == "acc-1"
	})).Return(nil)

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No", "Status"},
			{"Acme", "98765 43210", "received"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.FailedCount)
	assert.Empty(t, report.Failed)
	leads.AssertExpectations(t)
}

func TestBulkImport_DuplicateWithinBatchFirstWins(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(false, nil).Once()
	leads.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"Acme", "9876543210"},
			{"Acme Again", "98765 43210"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, "Duplicate phone number in this upload: 9876543210", report.Failed[0].Reason)
	assert.Equal(t, 3, report.Failed[0].RowNumber)
	leads.AssertExpectations(t)
}

func TestBulkImport_ExistingContactRejected(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9876543210").Return(true, nil)

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"Acme", "9876543210"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, "Phone number already exists: 9876543210", report.Failed[0].Reason)
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBulkImport_MissingPhoneReportsRowNumberAndData(t *testing.T) {
	uc, _, _ := newBulkImportFixture()

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"NoPhone Inc", ""},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, "Phone number is required", report.Failed[0].Reason)
	assert.Equal(t, 2, report.Failed[0].RowNumber)
	assert.Equal(t, "NoPhone Inc", report.Failed[0].Data["Company Name"])
}

func TestBulkImport_BlankRowsSkippedBeforeNumbering(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", mock.Anything).Return(false, nil)
	leads.On("Create", mock.Anything, mock.Anything).Return(nil)

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"", ""},
			{"Acme", "9876543210"},
			{"NoPhone Inc", ""},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	// Blank row dropped, so the failing row is the second surviving data row.
	assert.Equal(t, 3, report.Failed[0].RowNumber)
}

func TestBulkImport_HeaderOnLaterRowShiftsNumbering(t *testing.T) {
	uc, _, _ := newBulkImportFixture()

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"", ""},
			{"Company Name", "Contact No"},
			{"NoPhone Inc", ""},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, 3, report.Failed[0].RowNumber)
}

func TestBulkImport_DigitRescueFindsContactInUnnamedColumn(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", "9898098781").Return(false, nil)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ContactNumber == "9898098781"
	})).Return(nil)

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Misc"},
			{"Acme", "9898098781"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	leads.AssertExpectations(t)
}

func TestBulkImport_EmptySheetFails(t *testing.T) {
	uc, _, _ := newBulkImportFixture()

	_, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows:      [][]string{{"", ""}, {}},
	})

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "No usable rows found in file", domainErr.Message)
}

func TestBulkImport_HeaderOnlySheetIsEmptyReport(t *testing.T) {
	uc, _, _ := newBulkImportFixture()

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows:      [][]string{{"Company Name", "Contact No"}},
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.SuccessCount)
	assert.Equal(t, 0, report.FailedCount)
	assert.NotNil(t, report.Failed)
}

func TestBulkImport_RepoErrorOnOneRowDoesNotAbortBatch(t *testing.T) {
	uc, leads, _ := newBulkImportFixture()

	leads.On("ExistsByContact", mock.Anything, "acc-1", "1111111111").Return(false, nil)
	leads.On("ExistsByContact", mock.Anything, "acc-1", "2222222222").Return(false, nil)
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ContactNumber == "1111111111"
	})).Return(errors.New("insert failed"))
	leads.On("Create", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.ContactNumber == "2222222222"
	})).Return(nil)

	report, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"First", "1111111111"},
			{"Second", "2222222222"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.Equal(t, "insert failed", report.Failed[0].Reason)
}

func TestBulkImport_PublishesCompletionEvent(t *testing.T) {
	leads := new(MockLeadRepository)
	accounts := new(MockAccountRepository)
	events := new(MockEventPublisher)
	uc := NewBulkImportLeadsUseCase(leads, accounts, events)

	leads.On("ExistsByContact", mock.Anything, "acc-1", mock.Anything).Return(false, nil)
	leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	accounts.On("FindByID", mock.Anything, "acc-1").Return(&entity.Account{
		ID: "acc-1", Name: "Owner", Email: "owner@example.com",
	}, nil)
	events.On("PublishImportCompleted", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), BulkImportInput{
		AccountID: "acc-1",
		FileName:  "leads.xlsx",
		Rows: [][]string{
			{"Company Name", "Contact No"},
			{"Acme", "9876543210"},
		},
	})

	assert.NoError(t, err)
	events.AssertExpectations(t)
}
