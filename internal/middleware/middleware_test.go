package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/logger"
	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/utils"
)

const secret = "test-secret"

func protected(mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		op := OperatorFrom(c)
		return c.JSON(http.StatusOK, echo.Map{"id": op.ID, "role": op.Role})
	}, mw...)
	return e
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthSetsOperator(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, "op-7", model.RoleEditor, 5)
	require.NoError(t, err)

	rec := do(protected(JWTAuth(secret)), http.MethodGet, "/me", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"op-7","role":"EDITOR"}`, rec.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
	e := protected(JWTAuth(secret))
	other, err := utils.NewAccessToken("other", "op-7", model.RoleAdmin, 5)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", other.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", "junk").Code)
}

func TestRequireRole(t *testing.T) {
	e := protected(JWTAuth(secret), RequireRole(model.RoleAdmin))
	admin, _ := utils.NewAccessToken(secret, "a", model.RoleAdmin, 5)
	editor, _ := utils.NewAccessToken(secret, "e", model.RoleEditor, 5)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/me", admin.Token).Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/me", editor.Token).Code)
}

func TestRequireRoleWithoutOperator(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole(model.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/x", "").Code)
}

func TestCORSPreflightAnswersOK(t *testing.T) {
	e := echo.New()
	e.Pre(CORS([]string{"*"}))
	e.POST("/v1/contact-link", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodOptions, "/v1/contact-link", nil)
	req.Header.Set("Origin", "https://artistlink.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type, apikey")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestCORSPreflightAcceptsAnyRequestHeaders(t *testing.T) {
	e := echo.New()
	e.Pre(CORS([]string{"*"}))
	e.POST("/v1/contact-link", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	for _, hdrs := range []string{
		"apikey,authorization,content-type,x-client-info,x-supabase-client-platform",
		"content-type,x-requested-with",
		"x-custom-header",
	} {
		req := httptest.NewRequest(http.MethodOptions, "/v1/contact-link", nil)
		req.Header.Set("Origin", "https://artistlink.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", hdrs)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, hdrs)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), hdrs)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Headers"), hdrs)
	}
}

func TestCORSAddsOriginOnSimpleRequest(t *testing.T) {
	e := echo.New()
	e.Pre(CORS([]string{"https://artistlink.example"}))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://artistlink.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "pong", rec.Body.String())
	assert.Equal(t, "https://artistlink.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/track/click", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/track/click")

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}
	assert.Equal(t, "rl:ip:203.0.113.9:route:POST /v1/track/click", rateKey(cfg, c))

	cfg.KeyStrategy = "user"
	assert.Equal(t, "rl:user:anon", rateKey(cfg, c))
	SetOperator(c, &model.Operator{ID: "op-1"})
	assert.Equal(t, "rl:user:op-1", rateKey(cfg, c))
}

func TestDisabledRedisMiddlewarePassesThrough(t *testing.T) {
	log := logger.Discard()
	e := echo.New()
	e.GET("/v1/artists", func(c echo.Context) error { return c.String(http.StatusOK, "list") },
		RateLimit(config.RateLimitConfig{Enabled: true}, nil, log),
		ResponseCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil, log))

	rec := do(e, http.MethodGet, "/v1/artists", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCacheEntryRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodeEntry(http.StatusOK, hdr, []byte(`{"slug":"altemar"}`))
	require.NoError(t, err)

	hit, ok := decodeEntry(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, hit.Status)
	assert.Equal(t, "application/json", hit.Header.Get("Content-Type"))
	assert.Equal(t, `{"slug":"altemar"}`, string(hit.Body))

	_, ok = decodeEntry(bs[:5])
	assert.False(t, ok)
	_, ok = decodeEntry([]byte(`{"b":"eA=="}`))
	assert.False(t, ok, "entry without a status")
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "artistlink:cache", KeyStrategy: "route_query"}
	key := func(target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/artists/:slug")
		return cacheKey(cfg, c)
	}
	assert.NotEqual(t, key("/v1/artists/a"), key("/v1/artists/b"))
	assert.Equal(t, key("/v1/artists/a"), key("/v1/artists/a"))
	assert.Contains(t, key("/v1/artists/a"), "artistlink:cache:")
}

func TestBodyRecorderStopsBufferingPastLimit(t *testing.T) {
	rec := &bodyRecorder{ResponseWriter: httptest.NewRecorder(), limit: 4}
	_, _ = rec.Write([]byte("abc"))
	_, _ = rec.Write([]byte("de"))
	assert.True(t, rec.truncated)
	assert.Equal(t, "abc", rec.buf.String())
}

func TestRequestLoggerWritesLine(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logger.NewWithWriter(&buf, "info", "json")))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do(e, http.MethodGet, "/health", "")
	assert.Contains(t, buf.String(), `"uri":"/health"`)
	assert.Contains(t, buf.String(), `"status":200`)
}
