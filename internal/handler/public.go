package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// PublicHandler serves the unauthenticated artist pages.  Only active
// artists are visible, and only through their public projection.
type PublicHandler struct {
	Artists      ArtistStore
	Projects     ItemStore[model.Project]
	Shows        ItemStore[model.Show]
	Testimonials ItemStore[model.Testimonial]
	Photos       ItemStore[model.Photo]
	Videos       ItemStore[model.Video]
	Leads        LeadStore
	Log          *logger.Logger
	Timeout      time.Duration
}

// ArtistPage is everything a public artist page renders.
type ArtistPage struct {
	Artist       model.PublicArtist   `json:"artist"`
	Projects     []*model.Project     `json:"projects"`
	Shows        []*publicShow        `json:"shows"`
	Testimonials []*model.Testimonial `json:"testimonials"`
	Photos       []*model.Photo       `json:"photos"`
	Videos       []*model.Video       `json:"videos"`
}

// publicShow adds the bookable flag the agenda uses to offer a contact
// action.
type publicShow struct {
	*model.Show
	Bookable bool `json:"bookable"`
}

// ListArtists handles GET /v1/artists.
func (h *PublicHandler) ListArtists(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	artists, err := h.Artists.ListActive(ctx)
	if err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	out := make([]model.PublicArtist, 0, len(artists))
	for _, a := range artists {
		out = append(out, a.Public())
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetArtistPage handles GET /v1/artists/:slug.
func (h *PublicHandler) GetArtistPage(c echo.Context) error {
	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	artist, err := h.Artists.GetActiveBySlug(ctx, c.Param("slug"))
	if err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	page, err := h.loadPage(ctx, artist)
	if err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PublicHandler) loadPage(ctx context.Context, a *model.Artist) (*ArtistPage, error) {
	page := &ArtistPage{Artist: a.Public()}
	var err error
	if page.Projects, err = h.Projects.ListByArtist(ctx, a.ID); err != nil {
		return nil, err
	}
	shows, err := h.Shows.ListByArtist(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	page.Shows = make([]*publicShow, 0, len(shows))
	for _, s := range shows {
		page.Shows = append(page.Shows, &publicShow{Show: s, Bookable: s.Bookable()})
	}
	if page.Testimonials, err = h.Testimonials.ListByArtist(ctx, a.ID); err != nil {
		return nil, err
	}
	if page.Photos, err = h.Photos.ListByArtist(ctx, a.ID); err != nil {
		return nil, err
	}
	if page.Videos, err = h.Videos.ListByArtist(ctx, a.ID); err != nil {
		return nil, err
	}
	return page, nil
}

type leadRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	EventDate string `json:"eventDate"`
	EventCity string `json:"eventCity"`
	Message   string `json:"message"`
}

// CreateLead handles POST /v1/artists/:id/leads.  A name and at least one
// of email or phone are required.
func (h *PublicHandler) CreateLead(c echo.Context) error {
	var body leadRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	email := strings.TrimSpace(body.Email)
	phone := strings.TrimSpace(body.Phone)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if email == "" && phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or phone is required"})
	}
	if body.EventDate != "" {
		if _, err := time.Parse(model.DateLayout, body.EventDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventDate must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := storeCtx(c, h.Timeout)
	defer cancel()

	artistID := c.Param("id")
	active, err := h.Artists.IsActive(ctx, artistID)
	if err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	if !active {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msgNotFound})
	}
	lead := &model.Lead{
		ArtistID:  &artistID,
		Name:      &name,
		Email:     optional(email),
		Phone:     optional(phone),
		EventDate: optional(body.EventDate),
		EventCity: optional(strings.TrimSpace(body.EventCity)),
		Message:   optional(strings.TrimSpace(body.Message)),
	}
	if err := h.Leads.Create(ctx, lead); err != nil {
		return respondError(c, h.Log, err, msgNotFound)
	}
	h.Log.Info("lead created", "artist_id", artistID, "lead_id", lead.ID)
	return c.JSON(http.StatusCreated, lead)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
