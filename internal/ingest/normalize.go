package ingest

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

// CanonicalContactNumber trims the value and removes every whitespace
// character, internal ones included. All other characters survive, so
// "080 22 5590" becomes "080225590" and "9898098781/1090101010" is untouched.
func CanonicalContactNumber(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var statusAliasTable = map[string]entity.LeadStatus{
	"received":     entity.StatusReceived,
	"not received": entity.StatusNotReceived,
	"not_received": entity.StatusNotReceived,
	"not recived":  entity.StatusNotReceived, // common sheet typo
	"switch off":   entity.StatusSwitchOff,
	"switch_off":   entity.StatusSwitchOff,
	"callback":     entity.StatusCallback,
	"required":     entity.StatusRequired,
	"not required": entity.StatusNotRequired,
	"not_required": entity.StatusNotRequired,
}

// NormalizeStatus maps free-form status text onto the closed enum. Unknown or
// empty input falls back to the unselected sentinel, never an error.
func NormalizeStatus(value string) entity.LeadStatus {
	if value == "" {
		return entity.StatusUnselected
	}
	if status, ok := statusAliasTable[strings.ToLower(strings.TrimSpace(value))]; ok {
		return status
	}
	return entity.StatusUnselected
}

// MapStatus is NormalizeStatus for update paths: unknown input yields ok=false
// so the caller can leave the stored value untouched.
func MapStatus(value string) (entity.LeadStatus, bool) {
	status, ok := statusAliasTable[strings.ToLower(strings.TrimSpace(value))]
	return status, ok
}

var followUpLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"02-01-2006 15:04",
	"2 Jan 2006 15:04",
	"Jan 2, 2006",
}

// ParseFollowUpTime coerces a cell into a follow-up instant. Numeric values
// are treated as Excel date serials (days since the sheet epoch, fraction =
// time of day) and converted to UTC; anything else goes through a list of
// common layouts. Unparseable or empty input means "no follow-up scheduled".
func ParseFollowUpTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	}

	for _, layout := range followUpLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Candidate is the typed record built from one spreadsheet row, before
// uniqueness checks. An empty ContactNumber marks the row invalid.
type Candidate struct {
	CompanyName   string
	ContactNumber string
	Address       string
	Notes         string
	Status        entity.LeadStatus
	FollowUpAt    *time.Time
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// ExtractCandidate resolves each logical field for one data row: alias and
// fuzzy header matching first, the positional column map second, and for the
// contact number a last-resort scan for any cell carrying 8+ digits.
func ExtractCandidate(headers, cells []string, idx ColumnIndexes) Candidate {
	cellAt := func(i int) string {
		if i >= 0 && i < len(cells) {
			return cells[i]
		}
		return ""
	}

	company := ResolveField(headers, cells, companyAliases, companyFuzzy)
	contact := ResolveField(headers, cells, contactAliases, contactFuzzy)
	address := ResolveField(headers, cells, addressAliases, addressFuzzy)
	status := ResolveField(headers, cells, statusAliases, statusFuzzy)
	notes := ResolveField(headers, cells, notesAliases, notesFuzzy)
	followUp := ResolveField(headers, cells, followUpAliases, followUpFuzzy)

	if company == "" {
		company = cellAt(idx.Company)
	}
	if contact == "" {
		contact = cellAt(idx.Contact)
	}
	if address == "" {
		address = cellAt(idx.Address)
	}
	if status == "" {
		status = cellAt(idx.Status)
	}
	if notes == "" {
		notes = cellAt(idx.Notes)
	}
	if followUp == "" {
		followUp = cellAt(idx.FollowUp)
	}

	if strings.TrimSpace(contact) == "" {
		for _, cell := range cells {
			if digitCount(cell) >= 8 {
				contact = cell
				break
			}
		}
	}

	candidate := Candidate{
		CompanyName:   strings.TrimSpace(company),
		ContactNumber: CanonicalContactNumber(contact),
		Address:       strings.TrimSpace(address),
		Notes:         strings.TrimSpace(notes),
		Status:        NormalizeStatus(status),
	}
	if t, ok := ParseFollowUpTime(followUp); ok {
		candidate.FollowUpAt = &t
	}
	return candidate
}

// RowData pairs cells with their original header labels for failure reports.
// Unnamed columns are skipped, matching what the uploader sees in their sheet.
func RowData(headers, cells []string) map[string]string {
	data := make(map[string]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if i < len(cells) {
			data[h] = cells[i]
		} else {
			data[h] = ""
		}
	}
	return data
}
