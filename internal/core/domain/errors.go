package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrOrganizationRequired: User and IT logins must name their organization.
	ErrOrganizationRequired = errors.New("organization is required for this role")
	// ErrOrganizationMismatch: the supplied organization is not the user's.
	ErrOrganizationMismatch = errors.New("invalid organization")
	// ErrNoOrganization: the alert creator has no organization to attribute
	// the alert to.
	ErrNoOrganization = errors.New("user has no associated organization")

	// ErrInvalidID marks identifiers that do not parse as object references.
	// Always a client error, never a server fault.
	ErrInvalidID = errors.New("invalid identifier format")

	ErrAlertNotFound  = errors.New("alert not found")
	ErrTicketNotFound = errors.New("ticket not found")

	ErrMissingFields = errors.New("missing required fields")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
)
