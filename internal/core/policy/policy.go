// Package policy decides, per operation, whether a caller's verified claims
// permit it. It is pure and independent of the HTTP layer so the access rules
// can be tested on their own.
package policy

import (
	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/token"
)

// Action names a guarded operation.
type Action string

const (
	ActionRegisterUser  Action = "user:register"
	ActionCreateAlert   Action = "alert:create"
	ActionListAlerts    Action = "alert:list"
	ActionClassifyAlert Action = "alert:classify"
	ActionReviewAlert   Action = "alert:review"
	ActionCreateTicket  Action = "ticket:create"
	ActionListTickets   Action = "ticket:list"
	ActionUpdateTicket  Action = "ticket:update"
)

// Decide returns nil when claims permit action. Registration demands the
// can_create_users claim; every other guarded action only requires a verified
// identity.
func Decide(action Action, claims *token.Claims) error {
	if claims == nil {
		return domain.ErrUnauthorized
	}

	switch action {
	case ActionRegisterUser:
		if !claims.CanCreateUsers {
			return domain.ErrForbidden
		}
	}
	return nil
}
