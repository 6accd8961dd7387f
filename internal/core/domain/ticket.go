package domain

import "time"

// TicketStatusOpen is the initial status of every ticket. Later statuses are
// free-form and set by the update operation.
const TicketStatusOpen = "Open"

// Ticket is derived from a reviewed alert. OrganizationID is copied from the
// source alert at creation time and never changes.
type Ticket struct {
	ID             string    `json:"_id"`
	AlertID        string    `json:"alertId"`
	OrganizationID string    `json:"organizationId"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
