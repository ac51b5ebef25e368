package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/handler"
	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/utils"
)

const secret = "router-secret"

func newServer() *echo.Echo {
	log := logger.Discard()
	e := echo.New()
	Register(e, []string{"*"}, Deps{
		Public:    &handler.PublicHandler{Log: log},
		Contact:   &handler.ContactHandler{Log: log},
		Tracking:  &handler.TrackingHandler{},
		Auth:      &handler.AuthHandler{Log: log},
		Dashboard: handler.NewDashboardHandler(handler.DashboardStores{}, nil, log, time.Second),
		JWTSecret: secret,
		Log:       log,
	})
	return e
}

func TestRoutesRegistered(t *testing.T) {
	e := newServer()
	have := map[string]bool{}
	for _, r := range e.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"POST /v1/contact-link",
		"OPTIONS /v1/contact-link",
		"POST /v1/track/page-view",
		"POST /v1/track/click",
		"GET /v1/artists",
		"GET /v1/artists/:slug",
		"POST /v1/artists/:id/leads",
		"POST /v1/auth/login",
		"GET /v1/me",
		"GET /v1/dashboard/stats",
		"PUT /v1/dashboard/artists/:id/:collection/order",
		"DELETE /v1/dashboard/artists/:id",
		"PUT /v1/dashboard/projects/:id",
		"POST /v1/dashboard/artists/:id/videos",
		"PATCH /v1/dashboard/leads/:id",
	} {
		assert.True(t, have[want], want)
	}
}

func TestDashboardRequiresToken(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteArtistIsAdminOnly(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, "op-1", model.RoleEditor, 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/v1/dashboard/artists/a1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownRoleRejected(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, "op-1", "VIEWER", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard/stats", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestContactPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/contact-link", nil)
	req.Header.Set("Origin", "https://fans.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestContactPreflightWithClientSDKHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/v1/contact-link", nil)
	req.Header.Set("Origin", "https://fans.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers",
		"apikey,authorization,content-type,x-client-info,x-supabase-client-platform,"+
			"x-supabase-client-platform-version,x-supabase-client-runtime,x-supabase-client-runtime-version")
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestConfigDisabledRedisStillServes(t *testing.T) {
	e := echo.New()
	log := logger.Discard()
	RegisterRoutes(e)
	RegisterPublic(e, Deps{
		Public: &handler.PublicHandler{Log: log}, Contact: &handler.ContactHandler{Log: log},
		Tracking: &handler.TrackingHandler{}, Log: log,
		Cache:     config.CacheConfig{Enabled: true},
		RateLimit: config.RateLimitConfig{Enabled: true},
	})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
