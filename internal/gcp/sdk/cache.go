package sdk

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// GCPSDKCache is the centralized cache for GCP SDK calls whose answers are
// stable for the lifetime of a run (enabled services, role definitions).
// Default expiration: 2 hours, cleanup interval: 10 minutes.
var GCPSDKCache = cache.New(2*time.Hour, 10*time.Minute)

// CacheKey generates a consistent cache key from components.
// Example: CacheKey("enabled-services", "my-project") -> "enabled-services-my-project"
func CacheKey(parts ...string) string {
	return strings.Join(parts, "-")
}

// GetFromCache retrieves an item from cache
func GetFromCache(key string) (interface{}, bool) {
	return GCPSDKCache.Get(key)
}

// SetInCache stores an item in cache with default expiration
func SetInCache(key string, value interface{}) {
	GCPSDKCache.Set(key, value, 0) // 0 = use default expiration
}
