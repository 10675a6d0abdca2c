package entity

// ImportFailure records one rejected spreadsheet row: its 1-based source row
// number, the reason, and the raw cells keyed by their original header labels.
type ImportFailure struct {
	RowNumber int               `json:"row_number"`
	Reason    string            `json:"reason"`
	Data      map[string]string `json:"data"`
}

// ImportReport is the ephemeral result of one bulk import. It is returned to
// the caller and published on the event bus, never persisted.
type ImportReport struct {
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
	Failed       []ImportFailure `json:"failed_rows"`
}
