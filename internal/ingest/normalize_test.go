package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cgsoftworks/leadbook/internal/entity"
)

func TestCanonicalContactNumber(t *testing.T) {
	assert.Equal(t, "9876543210", CanonicalContactNumber(" 98765 43210 "))
	assert.Equal(t, "080225590", CanonicalContactNumber("080 22 5590"))
	assert.Equal(t, "9898098781/1090101010", CanonicalContactNumber("9898098781/1090101010"))
	assert.Equal(t, "+91-9876543210", CanonicalContactNumber("+91-98765 43210"))
	assert.Equal(t, "", CanonicalContactNumber("   "))

	canonical := CanonicalContactNumber(" 98765 43210 ")
	assert.Equal(t, canonical, CanonicalContactNumber(canonical))
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, entity.StatusReceived, NormalizeStatus("Received"))
	assert.Equal(t, entity.StatusNotReceived, NormalizeStatus("not received"))
	assert.Equal(t, entity.StatusNotReceived, NormalizeStatus("NOT_RECEIVED"))
	assert.Equal(t, entity.StatusNotReceived, NormalizeStatus("not recived"))
	assert.Equal(t, entity.StatusSwitchOff, NormalizeStatus("  switch off  "))
	assert.Equal(t, entity.StatusCallback, NormalizeStatus("Callback"))
	assert.Equal(t, entity.StatusUnselected, NormalizeStatus(""))
	assert.Equal(t, entity.StatusUnselected, NormalizeStatus("warm prospect"))
}

func TestMapStatus_UnknownIsNotOK(t *testing.T) {
	_, ok := MapStatus("warm prospect")
	assert.False(t, ok)

	status, ok := MapStatus("not required")
	assert.True(t, ok)
	assert.Equal(t, entity.StatusNotRequired, status)
}

func TestParseFollowUpTime_ExcelSerial(t *testing.T) {
	got, ok := ParseFollowUpTime("45000")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), got)

	// Fractional part is the time of day.
	got, ok = ParseFollowUpTime("45000.5")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC), got)
}

func TestParseFollowUpTime_Layouts(t *testing.T) {
	got, ok := ParseFollowUpTime("2026-09-01 14:30")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC), got)

	got, ok = ParseFollowUpTime("2026-09-01T14:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC), got)

	_, ok = ParseFollowUpTime("next tuesday maybe")
	assert.False(t, ok)

	_, ok = ParseFollowUpTime("")
	assert.False(t, ok)
}

func TestExtractCandidate_FullRow(t *testing.T) {
	headers := []string{"Company Name", "Contact No", "Address", "Status", "Follow Up Date", "Notes"}
	cells := []string{" Acme ", " 98765 43210 ", " 12 High St ", "not recived", "2026-09-01 14:30", " call after 5 "}

	c := ExtractCandidate(headers, cells, MapColumns(headers))

	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "9876543210", c.ContactNumber)
	assert.Equal(t, "12 High St", c.Address)
	assert.Equal(t, entity.StatusNotReceived, c.Status)
	assert.Equal(t, "call after 5", c.Notes)
	assert.NotNil(t, c.FollowUpAt)
	assert.Equal(t, time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC), *c.FollowUpAt)
}

func TestExtractCandidate_PositionalFallback(t *testing.T) {
	// Header labels resolve the column map, but the row's own cells only line
	// up positionally once alias resolution fails on blanks.
	headers := []string{"Company Name", "Contact No"}
	idx := MapColumns(headers)

	c := ExtractCandidate([]string{"", ""}, []string{"Acme", "9876543210"}, idx)
	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "9876543210", c.ContactNumber)
}

func TestExtractCandidate_DigitRescue(t *testing.T) {
	headers := []string{"Misc A", "Misc B"}
	idx := MapColumns(headers)

	c := ExtractCandidate(headers, []string{"scribbles", "98 765 43210"}, idx)
	assert.Equal(t, "9876543210", c.ContactNumber)
}

func TestRowData_PairsCellsWithHeaders(t *testing.T) {
	headers := []string{"Company Name", "Contact No", ""}
	cells := []string{"Acme", "9876543210"}

	data := RowData(headers, cells)
	assert.Equal(t, "Acme", data["Company Name"])
	assert.Equal(t, "9876543210", data["Contact No"])
	assert.NotContains(t, data, "")
	assert.Len(t, data, 2)
}
