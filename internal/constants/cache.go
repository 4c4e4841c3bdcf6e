package constants

import "time"

const (
	UserCachePrefix = "user_external" // User profile by token subject (CacheBuilder adds colon)
	UserCacheExpiry = 24 * time.Hour
)
