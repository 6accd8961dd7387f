package domain

// Organization is a tenant record. Read-only: organizations are seeded, never
// created or mutated through the API.
type Organization struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
