package domain

import "time"

// AlertStatus represents the workflow stage of an alert.
type AlertStatus string

const (
	AlertStatusNew        AlertStatus = "New"
	AlertStatusClassified AlertStatus = "Classified"
	AlertStatusReviewed   AlertStatus = "Reviewed"
)

// Alert is a security alert submitted by a user and owned by their
// organization. Status advances from New through Classified to Reviewed;
// classify and review check only that the alert exists, not its current
// status.
type Alert struct {
	ID             string      `json:"_id"`
	UserID         string      `json:"userId"`
	OrganizationID string      `json:"organizationId"`
	Message        string      `json:"message"`
	Status         AlertStatus `json:"status"`
	// Type is the classification tag; nil until the alert is classified.
	Type        *string   `json:"type"`
	TriggeredAt time.Time `json:"triggeredAt"`
}
