package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/utils"
)

// JWTAuth validates the Bearer access token on every request and stores
// the operator it names in the context.  Requests without a valid token
// are answered with 401 before reaching the handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			SetOperator(c, &model.Operator{ID: claims.Subject, Role: claims.Role})
			return next(c)
		}
	}
}
