package config

import "time"

// CacheConfig controls the Redis response cache in front of the public
// artist pages.  Contact links never go through it.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // methods eligible for caching, upper-case
	TTL          time.Duration
	KeyStrategy  string // route | method_route | route_query | method_route_query
	Prefix       string // every key lives under this prefix so a purge can find it
	MaxBodyBytes int    // larger responses are served but not stored
}

// LoadCacheConfig reads the CACHE_* variables.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      methodSet(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr("CACHE_PREFIX", "artistlink:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
