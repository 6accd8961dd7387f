package domain

const (
	RoleUser    = "User"
	RoleIT      = "IT"
	RoleAnalyst = "Analyst"
)

// ValidRole reports whether role is one of the three roles the system knows.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleIT || role == RoleAnalyst
}

// RequiresOrganization reports whether accounts of this role must be bound to
// an organization. Analysts operate across organizations.
func RequiresOrganization(role string) bool {
	return role != RoleAnalyst
}

// User models an account in the credential store.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	PasswordHash   string `json:"-"`
	Role           string `json:"role"`
	OrganizationID string `json:"organizationId,omitempty"`
	// CanCreateUsers is only meaningful for Analysts; it gates registration.
	CanCreateUsers bool `json:"can_create_users,omitempty"`
}
