// Package storage persists small string entries for the session the way a browser keeps cookies
package storage

import (
	"context"
	"net/http"
	"time"
)

// Options travel with every write. Zero Expires means the entry never expires by itself
type Options struct {
	Expires  time.Time
	Secure   bool
	SameSite http.SameSite
}

func (o Options) expired(now time.Time) bool {
	return !o.Expires.IsZero() && !now.Before(o.Expires)
}

// Storage is the durable key/value adapter behind the session.
// Get reports absent entries (and entries past their expiry) with ok=false
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, opts Options) error
	Delete(ctx context.Context, key string) error
}

// Purger is a Storage that can drop entries past their expiry in bulk
type Purger interface {
	Purge(ctx context.Context) (removed int64, err error)
}

// SameSiteName is the persisted form of s
func SameSiteName(s http.SameSite) string {
	switch s {
	case http.SameSiteLaxMode:
		return "lax"
	case http.SameSiteStrictMode:
		return "strict"
	case http.SameSiteNoneMode:
		return "none"
	default:
		return "default"
	}
}
