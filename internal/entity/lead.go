package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	StatusUnselected  LeadStatus = "Select Status"
	StatusReceived    LeadStatus = "received"
	StatusNotReceived LeadStatus = "not_received"
	StatusSwitchOff   LeadStatus = "switch_off"
	StatusCallback    LeadStatus = "callback"
	StatusRequired    LeadStatus = "required"
	StatusNotRequired LeadStatus = "not_required"
)

// Lead is a prospect tracked by exactly one owning account. ContactNumber is
// the canonical whitespace-free form and is unique per owner.
type Lead struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	CompanyName   string     `json:"company_name"`
	ContactNumber string     `json:"contact_number"`
	Address       string     `json:"address"`
	Notes         string     `json:"notes"`
	Status        LeadStatus `json:"status"`

	FollowUpAt *time.Time `json:"follow_up_at,omitempty"`
	// Forced back to false whenever FollowUpAt changes. Set true exactly
	// once by the reminder worker after the due-soon email goes out.
	FollowUpReminderSent bool `json:"follow_up_reminder_sent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewLead(accountID string) *Lead {
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Status:    StatusUnselected,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Label renders a status for human-facing output ("not_received" -> "Not Received").
func (s LeadStatus) Label() string {
	if s == "" || s == StatusUnselected {
		return "N/A"
	}
	parts := strings.Split(string(s), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
