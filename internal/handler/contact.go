package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
)

// ContactHandler serves the public contact-link endpoint.  It is the only
// path through which a WhatsApp number leaves the service, and only ever
// inside a generated link.
type ContactHandler struct {
	Contact ContactResolver
	Log     *logger.Logger
	Timeout time.Duration
}

type contactRequest struct {
	ArtistID   string `json:"artistId"`
	ArtistName string `json:"artistName"`
}

// ResolveLink handles POST /v1/contact-link.
func (h *ContactHandler) ResolveLink(c echo.Context) error {
	var body contactRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artistId is required"})
	}
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	link, err := h.Contact.ResolveContactLink(ctx, body.ArtistID, body.ArtistName)
	if err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, link)
}

// Preflight handles OPTIONS /v1/contact-link for clients that skip the
// CORS preflight headers.
func (h *ContactHandler) Preflight(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
