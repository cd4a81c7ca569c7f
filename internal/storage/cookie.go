package storage

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Cookie is storage bound to one HTTP request/response pair.
// Reads see request cookies and writes made earlier on the same pair
type Cookie struct {
	mu      sync.Mutex
	r       *http.Request
	w       http.ResponseWriter
	domain  string
	now     func() time.Time
	written map[string]*http.Cookie
}

func NewCookie(w http.ResponseWriter, r *http.Request, domain string) *Cookie {
	return &Cookie{
		r:       r,
		w:       w,
		domain:  domain,
		now:     time.Now,
		written: make(map[string]*http.Cookie),
	}
}

func (c *Cookie) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if written, ok := c.written[key]; ok {
		if written.MaxAge < 0 || (!written.Expires.IsZero() && !c.now().Before(written.Expires)) {
			return "", false, nil
		}
		return decodeCookieValue(written.Value)
	}

	rc, err := c.r.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	return decodeCookieValue(rc.Value)
}

func (c *Cookie) Set(_ context.Context, key string, value string, opts Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cookie := &http.Cookie{
		Name:     key,
		Value:    url.QueryEscape(value),
		Path:     "/",
		Expires:  opts.Expires,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: opts.SameSite,
	}
	if c.domain != "" {
		cookie.Domain = c.domain
	}

	c.written[key] = cookie
	http.SetCookie(c.w, cookie)
	return nil
}

func (c *Cookie) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cookie := &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	if c.domain != "" {
		cookie.Domain = c.domain
	}

	c.written[key] = cookie
	http.SetCookie(c.w, cookie)
	return nil
}

// Values like serialized users carry quotes and commas, which are not valid in a cookie
func decodeCookieValue(raw string) (string, bool, error) {
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return "", false, nil
	}
	return v, true, nil
}
