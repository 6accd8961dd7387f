package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat-tracker/incident-api/internal/core/domain"
	"github.com/threat-tracker/incident-api/internal/core/policy"
)

// Require enforces the access policy for one action against the verified
// claims. Must run after Auth.
func Require(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := policy.Decide(action, ClaimsFrom(c)); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					return echo.NewHTTPError(http.StatusForbidden, "Unauthorized")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing")
			}
			return next(c)
		}
	}
}
