// Package ingest turns messy spreadsheet rows into lead candidates. Header
// labels in the wild vary wildly ("Contact No.", "CONTACT NO", "contactno"),
// so resolution works on a normalized form and falls back to fuzzy substring
// matching and positional column indexes.
package ingest

import (
	"errors"
	"strings"
)

var ErrNoUsableRows = errors.New("No usable rows found in file")

// NormalizeHeader lowercases a header label and strips everything that is not
// a letter or digit. Idempotent by construction.
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveField returns the first non-empty cell whose header matches one of
// the aliases, in alias priority order. If no alias matches it scans headers
// in column order for one that contains any of the fuzzy matchers. Returns ""
// when nothing usable is found; never errors.
func ResolveField(headers, cells []string, aliases, fuzzy []string) string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	cellAt := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}

	for _, alias := range aliases {
		want := NormalizeHeader(alias)
		for i, h := range normalized {
			if h == want && strings.TrimSpace(cellAt(i)) != "" {
				return cellAt(i)
			}
		}
	}

	for _, matcher := range fuzzy {
		for i, h := range normalized {
			if strings.Contains(h, matcher) && strings.TrimSpace(cellAt(i)) != "" {
				return cellAt(i)
			}
		}
	}

	return ""
}

// Alias and fuzzy lists per logical field, mirroring the header variants seen
// in real uploads.
var (
	companyAliases  = []string{"company name", "company  name", "companyname", "name"}
	companyFuzzy    = []string{"company", "name"}
	contactAliases  = []string{"contact no", "contact number", "contactnumber", "mobile", "mobile no", "phone", "phone number"}
	contactFuzzy    = []string{"contact", "mobile", "phone"}
	addressAliases  = []string{"address"}
	addressFuzzy    = []string{"address"}
	statusAliases   = []string{"status"}
	statusFuzzy     = []string{"status"}
	notesAliases    = []string{"notes", "note", "remarks", "comment"}
	notesFuzzy      = []string{"note", "remark", "comment"}
	followUpAliases = []string{"follow up date", "follow up date time", "followupdate", "followupdatetime"}
	followUpFuzzy   = []string{"followup", "follow"}
)

// ColumnIndexes is the positional fallback map built from the detected header
// row, used when per-row alias resolution comes up empty. -1 means the column
// was not found.
type ColumnIndexes struct {
	Company  int
	Contact  int
	Address  int
	Status   int
	FollowUp int
	Notes    int
}

func MapColumns(headers []string) ColumnIndexes {
	idx := ColumnIndexes{Company: -1, Contact: -1, Address: -1, Status: -1, FollowUp: -1, Notes: -1}
	for i, h := range headers {
		n := NormalizeHeader(h)
		if n == "" {
			continue
		}
		if idx.Company == -1 && (strings.Contains(n, "company") || n == "name") {
			idx.Company = i
		}
		if idx.Contact == -1 && (strings.Contains(n, "contact") || strings.Contains(n, "mobile") || strings.Contains(n, "phone")) {
			idx.Contact = i
		}
		if idx.Address == -1 && strings.Contains(n, "address") {
			idx.Address = i
		}
		if idx.Status == -1 && strings.Contains(n, "status") {
			idx.Status = i
		}
		if idx.FollowUp == -1 && (strings.Contains(n, "followup") || strings.Contains(n, "follow")) {
			idx.FollowUp = i
		}
		if idx.Notes == -1 && (strings.Contains(n, "note") || strings.Contains(n, "remark") || strings.Contains(n, "comment")) {
			idx.Notes = i
		}
	}
	return idx
}

// likelyHeaderRow reports whether a row looks like column labels: it must name
// both a contact-like and a company/name-like column.
func likelyHeaderRow(cells []string) bool {
	hasContact := false
	hasCompany := false
	for _, cell := range cells {
		n := NormalizeHeader(cell)
		if strings.Contains(n, "contact") || strings.Contains(n, "mobile") || strings.Contains(n, "phone") {
			hasContact = true
		}
		if strings.Contains(n, "company") || n == "name" {
			hasCompany = true
		}
	}
	return hasContact && hasCompany
}

func blankRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// DetectHeaderRow finds the first row that looks like column labels, falling
// back to the first row with any non-empty cell. Returns ErrNoUsableRows when
// the sheet is effectively empty.
func DetectHeaderRow(rows [][]string) (int, error) {
	for i, row := range rows {
		if len(row) > 0 && likelyHeaderRow(row) {
			return i, nil
		}
	}
	for i, row := range rows {
		if !blankRow(row) {
			return i, nil
		}
	}
	return -1, ErrNoUsableRows
}
