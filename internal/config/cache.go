package config

import "time"

// CacheConfig defines settings for the employee response cache middleware.
// When Enabled is false or no Redis client is available, caching is a no-op.
// Only GET responses are cached; mutations clear all keys under Prefix.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults keep cached employee listings short-lived so updates become
// visible quickly even without explicit invalidation.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "empcache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
