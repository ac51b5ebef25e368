package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORS answers cross-origin preflights for the public site.  Preflight
// requests get 200 with an "ok" body; browsers reject some 204 preflights
// from older embedded webviews.  It is meant for e.Pre so OPTIONS requests
// never reach the router.  Any request header is accepted: client SDKs add
// their own x-* headers and a rejected preflight blocks the POST.
func CORS(origins []string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"*"},
		OptionsPassthrough:   true,
		OptionsSuccessStatus: http.StatusOK,
	})
	return echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return c.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
				return
			}
			next.ServeHTTP(w, r)
		}))
	})
}
