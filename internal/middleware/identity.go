package middleware

// identity.go carries the authenticated operator through the echo context.
// Handlers read it with OperatorFrom and pass it on explicitly; nothing is
// kept at package level.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/model"
)

const operatorKey = "operator"

// SetOperator attaches op to the request context.
func SetOperator(c echo.Context, op *model.Operator) { c.Set(operatorKey, op) }

// OperatorFrom returns the operator set by JWTAuth, or nil for anonymous
// requests.
func OperatorFrom(c echo.Context) *model.Operator {
	op, _ := c.Get(operatorKey).(*model.Operator)
	return op
}

// principal identifies the caller for rate-limit keys.
func principal(c echo.Context) string {
	if op := OperatorFrom(c); op != nil && op.ID != "" {
		return op.ID
	}
	return "anon"
}
