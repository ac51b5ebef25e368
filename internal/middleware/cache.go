package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/logger"
)

// bodyRecorder tees the response to the client and a bounded buffer.
type bodyRecorder struct {
	http.ResponseWriter
	status    int
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	if !r.truncated {
		if r.limit > 0 && r.buf.Len()+len(b) > r.limit {
			r.truncated = true
		} else {
			r.buf.Write(b)
		}
	}
	return r.ResponseWriter.Write(b)
}

// cacheKey hashes the request shape selected by the strategy under prefix.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var shape string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		shape = c.Path()
	case "method_route":
		shape = r.Method + " " + c.Path()
	case "method_route_query":
		shape = r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery
	default: // route_query
		shape = r.URL.Path + "?" + r.URL.RawQuery
	}
	sum := sha1.Sum([]byte(shape))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// cachedResponse is what a cache entry holds.  Body is base64 in JSON.
type cachedResponse struct {
	Status int         `json:"s"`
	Header http.Header `json:"h,omitempty"`
	Body   []byte      `json:"b"`
}

func encodeEntry(status int, header http.Header, body []byte) ([]byte, error) {
	return json.Marshal(cachedResponse{Status: status, Header: header, Body: body})
}

func decodeEntry(bs []byte) (cachedResponse, bool) {
	var e cachedResponse
	if err := json.Unmarshal(bs, &e); err != nil || e.Status == 0 {
		return cachedResponse{}, false
	}
	return e, true
}

// ResponseCache serves repeated public reads from Redis.  Only 200
// responses that fit in MaxBodyBytes are stored.  Hits are marked with
// X-Cache: HIT.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client, log *logger.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}
			ctx := c.Request().Context()
			key := cacheKey(cfg, c)

			if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
				if hit, ok := decodeEntry(bs); ok {
					for k, vals := range hit.Header {
						if strings.EqualFold(k, echo.HeaderContentLength) {
							continue
						}
						for _, v := range vals {
							c.Response().Header().Add(k, v)
						}
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(hit.Status)
					_, err := c.Response().Write(hit.Body)
					return err
				}
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")
			if err := next(c); err != nil {
				return err
			}
			if rec.status != http.StatusOK || rec.truncated {
				return nil
			}
			hdr := c.Response().Header().Clone()
			hdr.Del("X-Cache")
			entry, err := encodeEntry(rec.status, hdr, rec.buf.Bytes())
			if err != nil {
				return nil
			}
			if err := rdb.Set(context.WithoutCancel(ctx), key, entry, ttl).Err(); err != nil {
				log.Warn("response cache write failed", "key", key, "error", err)
			}
			return nil
		}
	}
}

// PurgeCache deletes every cached response under cfg.Prefix.  Dashboard
// writes call it so edits are visible on the public page immediately
// instead of after the TTL.
func PurgeCache(ctx context.Context, cfg config.CacheConfig, rdb *redis.Client) error {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, cfg.Prefix+":*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// PurgeOnWrite purges the response cache after any successful non-GET
// request it wraps.
func PurgeOnWrite(cfg config.CacheConfig, rdb *redis.Client, log *logger.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if c.Request().Method == http.MethodGet || err != nil || c.Response().Status >= 400 {
				return err
			}
			if perr := PurgeCache(context.WithoutCancel(c.Request().Context()), cfg, rdb); perr != nil {
				log.Warn("response cache purge failed", "error", perr)
			}
			return nil
		}
	}
}
