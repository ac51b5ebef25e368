package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/repository"
	"github.com/iliyamo/artistlink/internal/service"
)

const (
	msgInternal    = "Internal server error"
	msgUnavailable = "Service unavailable"
	msgNotFound    = "Artist not found"
)

// storeCtx bounds the store work of one request.
func storeCtx(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(c.Request().Context(), d)
}

// reason strips the sentinel prefix so clients see only the cause.
func reason(err error) string {
	return strings.TrimPrefix(err.Error(), service.ErrInvalidRequest.Error()+": ")
}

// respondError writes the JSON error body for err.  notFound is the message
// used when err means the addressed record does not exist.
func respondError(c echo.Context, log *logger.Logger, err error, notFound string) error {
	var (
		partial *service.ReorderError
		invalid validationError
	)
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": reason(err)})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound), errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
	case errors.As(err, &partial):
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "reorder partially applied",
			"applied": partial.Applied,
			"total":   partial.Total,
		})
	case errors.Is(err, service.ErrServiceUnavailable), service.IsUnavailable(err):
		log.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
			Warn("store unavailable", "path", c.Path(), "error", err)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": msgUnavailable})
	}
	log.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID)).
		ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": msgInternal})
}
