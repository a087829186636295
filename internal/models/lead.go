package models

import "time"

// LeadStatus enumerates the CRM pipeline stages.
type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusFollowUp   LeadStatus = "follow_up"
	LeadStatusClosedWon  LeadStatus = "closed_won"
	LeadStatusClosedLost LeadStatus = "closed_lost"
)

// LeadStatuses lists every valid status in pipeline order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusInProgress,
	LeadStatusFollowUp,
	LeadStatusClosedWon,
	LeadStatusClosedLost,
}

// Valid reports whether s is a known status.
func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Lead is a prospective customer tracked by the CRM.
type Lead struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Source      string     `json:"source,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Status      LeadStatus `json:"status"`
	LastContact *time.Time `json:"lastContact,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// MessageTemplate is a reusable outreach message. Content may reference
// {{name}} which is replaced by the lead name.
type MessageTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Notification is a short-lived CRM notice.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LeadStats summarises the pipeline.
type LeadStats struct {
	Total          int                `json:"total"`
	Active         int                `json:"active"`
	ByStatus       map[LeadStatus]int `json:"byStatus"`
	ConversionRate float64            `json:"conversionRate"`
}

// CRMState is the persisted CRM document.
type CRMState struct {
	Leads         []Lead            `json:"leads"`
	Templates     []MessageTemplate `json:"templates"`
	Notifications []Notification    `json:"notifications"`
}
