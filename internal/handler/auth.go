package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/middleware"
	"github.com/iliyamo/artistlink/internal/repository"
	"github.com/iliyamo/artistlink/internal/utils"
)

// AuthHandler signs operators in to the dashboard.  Accounts are created
// with artistctl; there is no self-service registration.
type AuthHandler struct {
	Operators    OperatorStore
	JWTSecret    string
	AccessTTLMin int
	Log          *logger.Logger
	Timeout      time.Duration
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/auth/login.  Unknown email and wrong password get
// the same answer.
func (h *AuthHandler) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	op, err := h.Operators.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return respondError(c, h.Log, err, "operator not found")
	}
	if op == nil || !utils.VerifyPassword(op.PasswordHash, body.Password) {
		h.Log.Warn("login failed", "email", email, "remote_ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.JWTSecret, op.ID, op.Role, h.AccessTTLMin)
	if err != nil {
		return respondError(c, h.Log, err, "")
	}
	h.Log.Info("operator signed in", "operator_id", op.ID, "role", op.Role)
	return c.JSON(http.StatusOK, echo.Map{"operator": op, "access": access})
}

// Me handles GET /v1/me and returns the stored profile of the caller.
func (h *AuthHandler) Me(c echo.Context) error {
	op := middleware.OperatorFrom(c)
	if op == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	stored, err := h.Operators.GetByID(ctx, op.ID)
	if err != nil {
		return respondError(c, h.Log, err, "operator not found")
	}
	return c.JSON(http.StatusOK, stored)
}
