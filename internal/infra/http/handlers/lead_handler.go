package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"github.com/cgsoftworks/leadbook/internal/infra/http/middleware"
	"github.com/cgsoftworks/leadbook/internal/usecase"
)

const maxUploadBytes = 10 << 20

type LeadHandler struct {
	Create     *usecase.CreateLeadUseCase
	List       *usecase.ListLeadsUseCase
	Update     *usecase.UpdateLeadUseCase
	Delete     *usecase.DeleteLeadUseCase
	BulkImport *usecase.BulkImportLeadsUseCase
}

func NewLeadHandler(
	create *usecase.CreateLeadUseCase,
	list *usecase.ListLeadsUseCase,
	update *usecase.UpdateLeadUseCase,
	del *usecase.DeleteLeadUseCase,
	bulkImport *usecase.BulkImportLeadsUseCase,
) *LeadHandler {
	return &LeadHandler{
		Create:     create,
		List:       list,
		Update:     update,
		Delete:     del,
		BulkImport: bulkImport,
	}
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.AccountID = middleware.AccountID(r.Context())

	lead, err := h.Create.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	out, err := h.List.Execute(r.Context(), usecase.ListLeadsInput{
		AccountID: middleware.AccountID(r.Context()),
		Page:      page,
		Search:    r.URL.Query().Get("search"),
		Status:    r.URL.Query().Get("status"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, out)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.AccountID = middleware.AccountID(r.Context())
	input.LeadID = chi.URLParam(r, "id")

	lead, err := h.Update.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Delete.Execute(r.Context(), usecase.DeleteLeadInput{
		AccountID: middleware.AccountID(r.Context()),
		LeadID:    chi.URLParam(r, "id"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Lead deleted successfully")
}

// HandleBulkUpload accepts a spreadsheet under the multipart field "file" and
// runs the import. Raw cell values are requested so date cells arrive as
// serial numbers instead of locale-formatted strings.
func (h *LeadHandler) HandleBulkUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "Invalid multipart request"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "File is required"})
		return
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		respondError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "Invalid or unreadable spreadsheet file"})
		return
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		respondError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "No usable rows found in file"})
		return
	}

	rows, err := workbook.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		respondError(w, &usecase.DomainError{Code: usecase.CodeValidation, Message: "Invalid or unreadable spreadsheet file"})
		return
	}

	report, err := h.BulkImport.Execute(r.Context(), usecase.BulkImportInput{
		AccountID: middleware.AccountID(r.Context()),
		FileName:  header.Filename,
		Rows:      rows,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	middleware.RecordImportOutcome(report.SuccessCount, report.FailedCount)
	respondData(w, http.StatusOK, report)
}
