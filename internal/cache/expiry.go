// Package cache decides whether fetched data is still fresh and keeps it around
package cache

import (
	"fmt"
	"strings"
	"time"
)

// IsExpired reports whether data fetched at fetchedAt is stale for the given ttl.
// Staleness is inclusive: age equal to ttl is expired, so ttl 0 always refetches
func IsExpired(fetchedAt time.Time, ttl time.Duration) bool {
	return isExpiredAt(fetchedAt, ttl, time.Now())
}

func isExpiredAt(fetchedAt time.Time, ttl time.Duration, now time.Time) bool {
	return now.Sub(fetchedAt) >= ttl
}

// Key builds a cache key from request identity parts
func Key(parts ...any) string {
	s := make([]string, 0, len(parts))
	for _, p := range parts {
		s = append(s, fmt.Sprint(p))
	}
	return strings.Join(s, "|")
}
