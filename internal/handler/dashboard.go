package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/middleware"
	"github.com/iliyamo/artistlink/internal/model"
)

// DashboardHandler serves the operator back office.  Every route behind it
// runs after JWTAuth, so the operator is always present in the context.
type DashboardHandler struct {
	Artists ArtistStore
	Leads   LeadStore
	Stats   StatsStore
	Reorder Reorderer

	Projects     *ItemResource[model.Project]
	Shows        *ItemResource[model.Show]
	Testimonials *ItemResource[model.Testimonial]
	Photos       *ItemResource[model.Photo]
	Videos       *ItemResource[model.Video]

	log     *logger.Logger
	timeout time.Duration
}

// DashboardStores groups the stores NewDashboardHandler needs.
type DashboardStores struct {
	Artists      ArtistStore
	Projects     ItemStore[model.Project]
	Shows        ItemStore[model.Show]
	Testimonials ItemStore[model.Testimonial]
	Photos       ItemStore[model.Photo]
	Videos       ItemStore[model.Video]
	Leads        LeadStore
	Stats        StatsStore
}

func NewDashboardHandler(s DashboardStores, reorder Reorderer, log *logger.Logger, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		Artists:      s.Artists,
		Leads:        s.Leads,
		Stats:        s.Stats,
		Reorder:      reorder,
		Projects:     newProjects(s.Projects, s.Artists, log, timeout),
		Shows:        newShows(s.Shows, s.Artists, log, timeout),
		Testimonials: newTestimonials(s.Testimonials, s.Artists, log, timeout),
		Photos:       newPhotos(s.Photos, s.Artists, log, timeout),
		Videos:       newVideos(s.Videos, s.Artists, log, timeout),
		log:          log,
		timeout:      timeout,
	}
}

func operatorID(c echo.Context) string {
	if op := middleware.OperatorFrom(c); op != nil {
		return op.ID
	}
	return ""
}

// GetStats handles GET /v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	stats, err := h.Stats.Dashboard(ctx)
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListArtists handles GET /v1/dashboard/artists, inactive artists included.
func (h *DashboardHandler) ListArtists(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": artists})
}

// GetArtist handles GET /v1/dashboard/artists/:id.
func (h *DashboardHandler) GetArtist(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	a, err := h.Artists.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, a)
}

// CreateArtist handles POST /v1/dashboard/artists.  New artists start
// inactive unless the body says otherwise.
func (h *DashboardHandler) CreateArtist(c echo.Context) error {
	a := &model.Artist{}
	if err := c.Bind(a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a.ID = ""
	if err := validateArtist(a); err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}

	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()
	if err := h.Artists.Create(ctx, a); err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	h.log.Info("artist created", "artist_id", a.ID, "slug", a.Slug, "operator_id", operatorID(c))
	return c.JSON(http.StatusCreated, a)
}

// UpdateArtist handles PUT /v1/dashboard/artists/:id.  Fields left out of
// the body keep their stored values.
func (h *DashboardHandler) UpdateArtist(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	id := c.Param("id")
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	oldSlug := a.Slug
	if err := c.Bind(a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a.ID = id
	if err := validateArtist(a); err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	if err := h.Artists.Update(ctx, a); err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	if a.Slug != oldSlug {
		// shared links to the old slug now 404
		h.log.Warn("artist slug changed", "artist_id", id, "old_slug", oldSlug, "new_slug", a.Slug,
			"operator_id", operatorID(c))
	}
	return c.JSON(http.StatusOK, a)
}

// DeleteArtist handles DELETE /v1/dashboard/artists/:id.  The store removes
// every record that belongs to the artist along with it.
func (h *DashboardHandler) DeleteArtist(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.Artists.Delete(ctx, id); err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	h.log.WithArtistID(id).Warn("artist deleted", "operator_id", operatorID(c))
	return c.NoContent(http.StatusNoContent)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// ReorderCollection handles PUT /v1/dashboard/artists/:id/:collection/order.
func (h *DashboardHandler) ReorderCollection(c echo.Context) error {
	var body reorderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	err := h.Reorder.Reorder(ctx, middleware.OperatorFrom(c), model.Collection(c.Param("collection")), c.Param("id"), body.IDs)
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListLeads handles GET /v1/dashboard/artists/:id/leads.
func (h *DashboardHandler) ListLeads(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	leads, err := h.Leads.ListByArtist(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": leads})
}

// UpdateLeadStatus handles PATCH /v1/dashboard/leads/:id.  Status is free
// text chosen by the operator ("new", "contacted", "closed", ...).
func (h *DashboardHandler) UpdateLeadStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status := strings.TrimSpace(body.Status)
	if status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	ctx, cancel := storeCtx(c, h.timeout)
	defer cancel()

	id := c.Param("id")
	if err := h.Leads.UpdateStatus(ctx, id, status); err != nil {
		return respondError(c, h.log, err, "lead not found")
	}
	return c.NoContent(http.StatusNoContent)
}
