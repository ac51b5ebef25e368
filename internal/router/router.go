// Package router registers the HTTP surface on an echo instance.  Route
// groups mirror the audiences: public pages, operator auth and the
// dashboard.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/handler"
	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/middleware"
	"github.com/iliyamo/artistlink/internal/model"
)

// Deps is everything the routes need.  Redis may be nil, which disables
// the response cache and the rate limiter.
type Deps struct {
	Public    *handler.PublicHandler
	Contact   *handler.ContactHandler
	Tracking  *handler.TrackingHandler
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler

	JWTSecret string
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	Log       *logger.Logger
}

// RegisterRoutes registers endpoints that need no authentication and no
// store: currently only the health probe.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated artist pages, the contact
// link and the engagement beacons.  Writes are rate limited; page reads are
// served through the response cache.  Contact links are never cached so a
// deactivated artist stops being contactable at once.
func RegisterPublic(e *echo.Echo, d Deps) {
	limit := middleware.RateLimit(d.RateLimit, d.Redis, d.Log)
	cache := middleware.ResponseCache(d.Cache, d.Redis, d.Log)

	e.GET("/v1/artists", d.Public.ListArtists, cache)
	e.GET("/v1/artists/:slug", d.Public.GetArtistPage, cache)
	e.POST("/v1/artists/:id/leads", d.Public.CreateLead, limit)

	e.POST("/v1/contact-link", d.Contact.ResolveLink, limit)
	e.OPTIONS("/v1/contact-link", d.Contact.Preflight)

	e.POST("/v1/track/page-view", d.Tracking.PageView, limit)
	e.POST("/v1/track/click", d.Tracking.Click, limit)
}

// RegisterAuth registers operator sign-in and the profile endpoint.
func RegisterAuth(e *echo.Echo, d Deps) {
	e.POST("/v1/auth/login", d.Auth.Login, middleware.RateLimit(d.RateLimit, d.Redis, d.Log))
	e.GET("/v1/me", d.Auth.Me, middleware.JWTAuth(d.JWTSecret))
}

// RegisterDashboard registers the operator back office under
// /v1/dashboard.  Any successful write purges the public response cache.
func RegisterDashboard(e *echo.Echo, d Deps) {
	h := d.Dashboard
	g := e.Group("/v1/dashboard",
		middleware.JWTAuth(d.JWTSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleEditor),
		middleware.PurgeOnWrite(d.Cache, d.Redis, d.Log),
	)

	g.GET("/stats", h.GetStats)

	// ---- Artists ----
	g.GET("/artists", h.ListArtists)
	g.POST("/artists", h.CreateArtist)
	g.GET("/artists/:id", h.GetArtist)
	g.PUT("/artists/:id", h.UpdateArtist)
	g.DELETE("/artists/:id", h.DeleteArtist, middleware.RequireRole(model.RoleAdmin))
	g.PUT("/artists/:id/:collection/order", h.ReorderCollection)

	// ---- Projects ----
	g.GET("/artists/:id/projects", h.Projects.List)
	g.POST("/artists/:id/projects", h.Projects.Create)
	g.PUT("/projects/:id", h.Projects.Update)
	g.DELETE("/projects/:id", h.Projects.Delete)

	// ---- Shows ----
	g.GET("/artists/:id/shows", h.Shows.List)
	g.POST("/artists/:id/shows", h.Shows.Create)
	g.PUT("/shows/:id", h.Shows.Update)
	g.DELETE("/shows/:id", h.Shows.Delete)

	// ---- Testimonials ----
	g.GET("/artists/:id/testimonials", h.Testimonials.List)
	g.POST("/artists/:id/testimonials", h.Testimonials.Create)
	g.PUT("/testimonials/:id", h.Testimonials.Update)
	g.DELETE("/testimonials/:id", h.Testimonials.Delete)

	// ---- Photos ----
	g.GET("/artists/:id/photos", h.Photos.List)
	g.POST("/artists/:id/photos", h.Photos.Create)
	g.PUT("/photos/:id", h.Photos.Update)
	g.DELETE("/photos/:id", h.Photos.Delete)

	// ---- Videos ----
	g.GET("/artists/:id/videos", h.Videos.List)
	g.POST("/artists/:id/videos", h.Videos.Create)
	g.PUT("/videos/:id", h.Videos.Update)
	g.DELETE("/videos/:id", h.Videos.Delete)

	// ---- Leads ----
	g.GET("/artists/:id/leads", h.ListLeads)
	g.PATCH("/leads/:id", h.UpdateLeadStatus)
}

// Register installs the cross-cutting middleware and every route group.
func Register(e *echo.Echo, origins []string, d Deps) {
	e.Pre(middleware.CORS(origins))
	RegisterRoutes(e)
	RegisterPublic(e, d)
	RegisterAuth(e, d)
	RegisterDashboard(e, d)
}
