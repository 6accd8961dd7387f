package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/threat-tracker/incident-api/internal/core/token"
)

const claimsKey = "claims"

// Auth verifies the bearer token and injects the claims into the request
// context. Expired and malformed tokens produce distinct messages, both 401.
func Auth(verifier *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing")
			}

			raw := header
			if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
				raw = header[7:]
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
				case errors.Is(err, token.ErrMissing):
					return echo.NewHTTPError(http.StatusUnauthorized, "Token is missing")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims injected by Auth, or nil when the
// middleware did not run.
func ClaimsFrom(c echo.Context) *token.Claims {
	claims, _ := c.Get(claimsKey).(*token.Claims)
	return claims
}
