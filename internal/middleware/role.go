package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects with 403 any request whose operator role is not one
// of roles.  It must run after JWTAuth; a request with no operator at all
// gets 401.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			op := OperatorFrom(c)
			if op == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if !allowed[op.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
