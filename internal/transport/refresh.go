package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/logger"
)

const (
	// RetryHeader marks the single replay of a request after a refresh
	RetryHeader = "X-Refresh-Tried"

	ReasonSessionExpired = "session-expired"
)

// Calls to these never trigger refresh or logout, otherwise a failing refresh would recurse
var authEndpoints = []string{
	"/Auth/Authenticate",
	"/Auth/Refresh",
	"/Auth/Logout",
}

// Session is what the refresh coordinator needs from the credential owner
type Session interface {
	// TryRefresh exchanges the refresh cookie for a new credential and reports success
	TryRefresh(ctx context.Context) bool
	Token() string
	// Expire logs out and sends the user to the entry point. Must be safe to call concurrently
	Expire(ctx context.Context, reason string)
}

type RefreshOption func(*sessionRefresh)

func WithRefreshLogger(l logger.Logger) RefreshOption {
	return func(s *sessionRefresh) { s.logger = logger.OrNoOp(l) }
}

func WithRefreshMetrics(m *Metrics) RefreshOption {
	return func(s *sessionRefresh) { s.metrics = m }
}

type sessionRefresh struct {
	next    http.RoundTripper
	session Session
	group   *singleflight.Group
	logger  logger.Logger
	metrics *Metrics
}

// SessionRefresh recovers from expired access tokens.
// All 401s that arrive while a refresh is running wait for that one refresh,
// each request is replayed at most once, and 502/503/504 end the session at once
func SessionRefresh(s Session, opts ...RefreshOption) Middleware {
	group := &singleflight.Group{}

	return func(next http.RoundTripper) http.RoundTripper {
		sr := &sessionRefresh{
			next:    next,
			session: s,
			group:   group,
			logger:  logger.NewNoOpLogger(),
		}
		for _, opt := range opts {
			opt(sr)
		}
		return sr
	}
}

func (s *sessionRefresh) RoundTrip(req *http.Request) (*http.Response, error) {
	if isAuthEndpoint(req.URL.Path) {
		return s.next.RoundTrip(req)
	}

	resp, err := s.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	retried := req.Header.Get(RetryHeader) != ""

	switch {
	case isFatalStatus(resp.StatusCode):
		discard(resp)
		return s.expire(req, "fatal_status", resp.StatusCode)
	case resp.StatusCode != http.StatusUnauthorized:
		return resp, nil
	case retried:
		discard(resp)
		return s.expire(req, "retry_unauthorized", resp.StatusCode)
	}

	discard(resp)

	token, err := s.refreshedToken(req)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return s.expire(req, "refresh_failed", http.StatusUnauthorized)
	}

	retry, err := replay(req, token)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Replaying request after refresh", "method", req.Method, "path", req.URL.Path)
	return s.RoundTrip(retry)
}

// refreshedToken joins the refresh in flight or starts one, returns empty token if refresh failed.
// A request sent with a token that was already replaced does not need another refresh
func (s *sessionRefresh) refreshedToken(req *http.Request) (string, error) {
	current := s.session.Token()
	if current != "" && req.Header.Get("Authorization") != bearer(current) {
		s.metrics.Refresh("skipped")
		return current, nil
	}

	// Refresh outlives the request that started it, other requests may be waiting
	ctx := context.WithoutCancel(req.Context())
	ch := s.group.DoChan("refresh", func() (any, error) {
		ok := s.session.TryRefresh(ctx)
		if ok {
			s.metrics.Refresh("success")
		} else {
			s.metrics.Refresh("failure")
		}
		return ok, nil
	})

	select {
	case res := <-ch:
		if ok, _ := res.Val.(bool); !ok {
			return "", nil
		}
		return s.session.Token(), nil
	case <-req.Context().Done():
		return "", req.Context().Err()
	}
}

func (s *sessionRefresh) expire(req *http.Request, trigger string, status int) (*http.Response, error) {
	s.logger.Warn("Session expired", "trigger", trigger, "status", status, "method", req.Method, "path", req.URL.Path)
	s.metrics.Expired(trigger)

	s.session.Expire(context.WithoutCancel(req.Context()), ReasonSessionExpired)
	return nil, fmt.Errorf("status %d: %w", status, apperrors.ErrSessionExpired)
}

func replay(req *http.Request, token string) (*http.Request, error) {
	r := req.Clone(req.Context())

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, fmt.Errorf("request body of %s %s can't be replayed", req.Method, req.URL.Path)
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		r.Body = body
	}

	r.Header.Set(RetryHeader, "1")
	r.Header.Set("Authorization", bearer(token))
	return r, nil
}

func isAuthEndpoint(path string) bool {
	for _, ep := range authEndpoints {
		if len(path) >= len(ep) && strings.EqualFold(path[len(path)-len(ep):], ep) {
			return true
		}
	}
	return false
}

func isFatalStatus(code int) bool {
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
