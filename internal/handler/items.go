package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
)

// ItemResource serves the dashboard CRUD of one per-artist collection.
// Items are created under /artists/:id/<collection> and addressed directly
// by their own id afterwards.
type ItemResource[T any] struct {
	noun     string
	store    ItemStore[T]
	artists  ArtistStore
	validate func(*T) error
	identify func(item *T, id, artistID string)
	owner    func(*T) string
	log      *logger.Logger
	timeout  time.Duration
}

func (r *ItemResource[T]) notFound() string { return r.noun + " not found" }

// List handles GET /artists/:id/<collection>.
func (r *ItemResource[T]) List(c echo.Context) error {
	ctx, cancel := storeCtx(c, r.timeout)
	defer cancel()

	artistID := c.Param("id")
	if _, err := r.artists.GetByID(ctx, artistID); err != nil {
		return respondError(c, r.log, err, msgNotFound)
	}
	items, err := r.store.ListByArtist(ctx, artistID)
	if err != nil {
		return respondError(c, r.log, err, msgNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Create handles POST /artists/:id/<collection>.  Ordered collections
// append the new item after the existing ones.
func (r *ItemResource[T]) Create(c echo.Context) error {
	item := new(T)
	if err := c.Bind(item); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	artistID := c.Param("id")
	r.identify(item, "", artistID)
	if err := r.validate(item); err != nil {
		return respondError(c, r.log, err, r.notFound())
	}

	ctx, cancel := storeCtx(c, r.timeout)
	defer cancel()
	if _, err := r.artists.GetByID(ctx, artistID); err != nil {
		return respondError(c, r.log, err, msgNotFound)
	}
	if err := r.store.Create(ctx, item); err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	r.log.Info(r.noun+" created", "artist_id", artistID, "operator_id", operatorID(c))
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /<collection>/:id.  Fields left out of the body keep
// their stored values; the owning artist and position never change here.
func (r *ItemResource[T]) Update(c echo.Context) error {
	ctx, cancel := storeCtx(c, r.timeout)
	defer cancel()

	id := c.Param("id")
	item, err := r.store.GetByID(ctx, id)
	if err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	artistID := r.owner(item)
	if err := c.Bind(item); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	r.identify(item, id, artistID)
	if err := r.validate(item); err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	if err := r.store.Update(ctx, item); err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	updated, err := r.store.GetByID(ctx, id)
	if err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /<collection>/:id.
func (r *ItemResource[T]) Delete(c echo.Context) error {
	ctx, cancel := storeCtx(c, r.timeout)
	defer cancel()

	id := c.Param("id")
	if err := r.store.Delete(ctx, id); err != nil {
		return respondError(c, r.log, err, r.notFound())
	}
	r.log.Info(r.noun+" deleted", "id", id, "operator_id", operatorID(c))
	return c.NoContent(http.StatusNoContent)
}

func newProjects(s ItemStore[model.Project], a ArtistStore, log *logger.Logger, d time.Duration) *ItemResource[model.Project] {
	return &ItemResource[model.Project]{
		noun: "project", store: s, artists: a, log: log, timeout: d,
		validate: validateProject,
		identify: func(p *model.Project, id, artistID string) { p.ID, p.ArtistID = id, artistID },
		owner:    func(p *model.Project) string { return p.ArtistID },
	}
}

func newShows(s ItemStore[model.Show], a ArtistStore, log *logger.Logger, d time.Duration) *ItemResource[model.Show] {
	return &ItemResource[model.Show]{
		noun: "show", store: s, artists: a, log: log, timeout: d,
		validate: validateShow,
		identify: func(sh *model.Show, id, artistID string) { sh.ID, sh.ArtistID = id, artistID },
		owner:    func(sh *model.Show) string { return sh.ArtistID },
	}
}

func newTestimonials(s ItemStore[model.Testimonial], a ArtistStore, log *logger.Logger, d time.Duration) *ItemResource[model.Testimonial] {
	return &ItemResource[model.Testimonial]{
		noun: "testimonial", store: s, artists: a, log: log, timeout: d,
		validate: validateTestimonial,
		identify: func(t *model.Testimonial, id, artistID string) { t.ID, t.ArtistID = id, artistID },
		owner:    func(t *model.Testimonial) string { return t.ArtistID },
	}
}

func newPhotos(s ItemStore[model.Photo], a ArtistStore, log *logger.Logger, d time.Duration) *ItemResource[model.Photo] {
	return &ItemResource[model.Photo]{
		noun: "photo", store: s, artists: a, log: log, timeout: d,
		validate: validatePhoto,
		identify: func(p *model.Photo, id, artistID string) { p.ID, p.ArtistID = id, artistID },
		owner:    func(p *model.Photo) string { return p.ArtistID },
	}
}

func newVideos(s ItemStore[model.Video], a ArtistStore, log *logger.Logger, d time.Duration) *ItemResource[model.Video] {
	return &ItemResource[model.Video]{
		noun: "video", store: s, artists: a, log: log, timeout: d,
		validate: validateVideo,
		identify: func(v *model.Video, id, artistID string) { v.ID, v.ArtistID = id, artistID },
		owner:    func(v *model.Video) string { return v.ArtistID },
	}
}
