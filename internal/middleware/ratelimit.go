package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/artistlink/internal/config"
	"github.com/iliyamo/artistlink/internal/logger"
)

// tokenBucket keeps a fractional token count per key and tops it up in
// proportion to the time since the last call, at refill/interval_ms tokens
// per millisecond.  It returns {allowed, whole tokens left, ms until the
// next whole token}.
var tokenBucket = redis.NewScript(`
local cap = tonumber(ARGV[2])
local rate = tonumber(ARGV[3]) / math.max(1, tonumber(ARGV[4]))
local now = tonumber(ARGV[1])

local b = redis.call('HMGET', KEYS[1], 'level', 'at')
local level = tonumber(b[1]) or cap
local at = tonumber(b[2]) or now
level = math.min(cap, level + math.max(0, now - at) * rate)

local ok = 0
if level >= 1 then
  ok = 1
  level = level - 1
end
local wait = 0
if level < 1 then
  wait = math.ceil((1 - level) / rate)
end

redis.call('HSET', KEYS[1], 'level', tostring(level), 'at', now)
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[5]))
return { ok, math.floor(level), wait }
`)

type verdict struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

func take(ctx context.Context, rdb redis.Scripter, cfg config.RateLimitConfig, key string, now time.Time) (verdict, error) {
	args := []any{
		now.UnixMilli(),
		cfg.Capacity,
		cfg.RefillTokens,
		cfg.RefillInterval.Milliseconds(),
		int64(cfg.TTL / time.Second),
	}
	vals, err := tokenBucket.Run(ctx, rdb, []string{key}, args...).Int64Slice()
	if err != nil {
		return verdict{}, err
	}
	if len(vals) != 3 {
		return verdict{}, fmt.Errorf("token bucket returned %d values", len(vals))
	}
	return verdict{
		allowed:   vals[0] == 1,
		remaining: vals[1],
		retry:     time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// RateLimit throttles callers with a Redis token bucket keyed per
// cfg.KeyStrategy.  With Redis disabled, or when the script fails, the
// request is let through: the limiter protects the store, it is not a
// correctness gate.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client, log *logger.Logger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(cfg, c)
			res, err := take(c.Request().Context(), rdb, cfg, key, time.Now())
			if err != nil {
				log.Warn("rate limiter unavailable", "key", key, "error", err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(res.remaining, 10))
			if !res.allowed {
				secs := int(math.Ceil(res.retry.Seconds()))
				h.Set("Retry-After", strconv.Itoa(secs))
				if cfg.Debug {
					log.Debug("rate limited", "key", key, "retry_after", secs)
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many requests",
					"retry_after": secs,
				})
			}
			return next(c)
		}
	}
}

func passthrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// rateKey builds "<prefix>:<dimension>:<value>..." from the strategy.
// Unknown strategies key on all three dimensions.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	who := principal(c)
	route := c.Request().Method + " " + c.Path()

	parts := []string{cfg.Prefix}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "ip":
		parts = append(parts, "ip", ip)
	case "user":
		parts = append(parts, "user", who)
	case "route":
		parts = append(parts, "route", route)
	case "ip_route":
		parts = append(parts, "ip", ip, "route", route)
	case "user_route":
		parts = append(parts, "user", who, "route", route)
	default:
		parts = append(parts, "ip", ip, "user", who, "route", route)
	}
	return strings.Join(parts, ":")
}
