package config

import "time"

// RateLimitConfig configures the Redis token bucket guarding the public
// write endpoints (contact links, tracking, leads, login).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size
	RefillTokens   int           // tokens added per interval
	RefillInterval time.Duration // refill period
	TTL            time.Duration // idle buckets expire after this
	KeyStrategy    string        // ip | user | route | ip_route | user_route | ip_user_route
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads the RATE_LIMIT_* variables and clamps them to
// values the limiter script can work with.
func LoadRateLimitConfig() RateLimitConfig {
	rl := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       max(envInt("RATE_LIMIT_CAPACITY", 30), 1),
		RefillTokens:   max(envInt("RATE_LIMIT_REFILL_TOKENS", 1), 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 2*time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "artistlink:rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}
	if rl.RefillInterval <= 0 {
		rl.RefillInterval = time.Second
	}
	// a bucket must outlive several refills or it resets to full too early
	rl.TTL = max(rl.TTL, 5*rl.RefillInterval)
	return rl
}
