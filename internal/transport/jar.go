package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/storage"
)

// CookiesKey is the storage entry holding API cookies between runs
const CookiesKey = "cookies"

type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Expires  time.Time `json:"expires,omitzero"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

// PersistentJar is a regular cookie jar that also mirrors API host cookies into storage,
// so the refresh cookie survives process restarts
type PersistentJar struct {
	jar   *cookiejar.Jar
	base  *url.URL
	store storage.Storage

	mu      sync.Mutex
	cookies map[string]persistedCookie
	now     func() time.Time
	logger  logger.Logger
}

func NewPersistentJar(ctx context.Context, base *url.URL, store storage.Storage, l logger.Logger) (*PersistentJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	j := &PersistentJar{
		jar:     jar,
		base:    base,
		store:   store,
		cookies: make(map[string]persistedCookie),
		now:     time.Now,
		logger:  logger.OrNoOp(l),
	}

	if err := j.load(ctx); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *PersistentJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

func (j *PersistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	if u.Host != j.base.Host {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	for _, c := range cookies {
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		if c.MaxAge < 0 || (!expires.IsZero() && !now.Before(expires)) {
			delete(j.cookies, c.Name)
			continue
		}

		j.cookies[c.Name] = persistedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
		}
	}

	// http.CookieJar has no error path and no context
	if err := j.save(context.Background()); err != nil {
		j.logger.Warn("Failed to persist cookies", "error", err)
	}
}

func (j *PersistentJar) load(ctx context.Context) error {
	raw, ok, err := j.store.Get(ctx, CookiesKey)
	if err != nil {
		return fmt.Errorf("load cookies: %w", err)
	}
	if !ok {
		return nil
	}

	var saved []persistedCookie
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		j.logger.Warn("Dropping unreadable persisted cookies", "error", err)
		return nil
	}

	now := j.now()
	restored := make([]*http.Cookie, 0, len(saved))
	for _, pc := range saved {
		if !pc.Expires.IsZero() && !now.Before(pc.Expires) {
			continue
		}
		j.cookies[pc.Name] = pc
		restored = append(restored, &http.Cookie{
			Name:     pc.Name,
			Value:    pc.Value,
			Path:     pc.Path,
			Expires:  pc.Expires,
			Secure:   pc.Secure,
			HttpOnly: pc.HttpOnly,
		})
	}

	j.jar.SetCookies(j.base, restored)
	return nil
}

func (j *PersistentJar) save(ctx context.Context) error {
	if len(j.cookies) == 0 {
		return j.store.Delete(ctx, CookiesKey)
	}

	list := make([]persistedCookie, 0, len(j.cookies))
	for _, c := range j.cookies {
		list = append(list, c)
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	return j.store.Set(ctx, CookiesKey, string(data), storage.Options{Secure: true, SameSite: http.SameSiteLaxMode})
}
