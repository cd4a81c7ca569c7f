package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/nkiryanov/eventdesk/internal/logger"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// Records requests as seen by the innermost round tripper
func recorder(status int, seen *[]*http.Request) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		*seen = append(*seen, req)
		return &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Header:     http.Header{},
			Body:       http.NoBody,
			Request:    req,
		}, nil
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	var seen []*http.Request

	rt := Chain(recorder(http.StatusOK, &seen), mw("first"), mw("second"), mw("third"))
	_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRequestID(t *testing.T) {
	var seen []*http.Request
	rt := Chain(recorder(http.StatusOK, &seen), RequestID())

	t.Run("generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://api.test/", nil)
		_, err := rt.RoundTrip(req)

		require.NoError(t, err)
		_, err = uuid.Parse(seen[len(seen)-1].Header.Get(RequestIDHeader))
		require.NoError(t, err)
		assert.Empty(t, req.Header.Get(RequestIDHeader), "caller request must not be mutated")
	})

	t.Run("kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://api.test/", nil)
		req.Header.Set(RequestIDHeader, "given")
		_, err := rt.RoundTrip(req)

		require.NoError(t, err)
		assert.Equal(t, "given", seen[len(seen)-1].Header.Get(RequestIDHeader))
	})
}

func TestBearer(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		preset   string
		expected string
	}{
		{"attached", "abc", "", "Bearer abc"},
		{"no token", "", "", ""},
		{"explicit header wins", "abc", "Bearer other", "Bearer other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []*http.Request
			rt := Chain(recorder(http.StatusOK, &seen), Bearer(staticToken(tt.token)))
			req := httptest.NewRequest(http.MethodGet, "http://api.test/Events", nil)
			if tt.preset != "" {
				req.Header.Set("Authorization", tt.preset)
			}

			_, err := rt.RoundTrip(req)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, seen[0].Header.Get("Authorization"))
		})
	}
}

func TestLogging(t *testing.T) {
	var buf strings.Builder
	l, err := logger.NewWriterLogger(&buf, logger.LevelDebug)
	require.NoError(t, err)

	var seen []*http.Request
	rt := Chain(recorder(http.StatusTeapot, &seen), Logging(l))

	_, err = rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/Events", nil))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "got HTTP response")
	assert.Contains(t, buf.String(), "path=/Events")
	assert.Contains(t, buf.String(), "status=418")
}

func TestRateLimit(t *testing.T) {
	t.Run("waits for tokens", func(t *testing.T) {
		var seen []*http.Request
		rt := Chain(recorder(http.StatusOK, &seen), RateLimit(rate.NewLimiter(rate.Every(50*time.Millisecond), 1)))

		start := time.Now()
		for range 3 {
			_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
			require.NoError(t, err)
		}

		assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
		assert.Len(t, seen, 3)
	})

	t.Run("nil limiter disabled", func(t *testing.T) {
		var seen []*http.Request
		rt := Chain(recorder(http.StatusOK, &seen), RateLimit(NewLimiter(0)))

		_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
		require.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		var seen []*http.Request
		lim := rate.NewLimiter(rate.Every(time.Hour), 1)
		rt := Chain(recorder(http.StatusOK, &seen), RateLimit(lim))
		_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()
		req := httptest.NewRequest(http.MethodGet, "http://api.test/", nil).WithContext(ctx)

		_, err = rt.RoundTrip(req)

		require.Error(t, err)
		assert.Len(t, seen, 1)
	})
}

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	var seen []*http.Request
	rt := Chain(recorder(http.StatusNotFound, &seen), Instrument(m))

	for range 2 {
		_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
		require.NoError(t, err)
	}
	m.Refresh("success")
	m.Expired("fatal_status")

	assert.Equal(t, float64(2), promtestutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "404")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.refreshes.WithLabelValues("success")))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(m.expirations.WithLabelValues("fatal_status")))
	assert.Equal(t, float64(0), promtestutil.ToFloat64(m.inFlight))

	t.Run("nil metrics", func(t *testing.T) {
		var nilMetrics *Metrics
		nilMetrics.Refresh("success")
		nilMetrics.Expired("x")

		rt := Chain(recorder(http.StatusOK, &seen), Instrument(nil))
		_, err := rt.RoundTrip(httptest.NewRequest(http.MethodGet, "http://api.test/", nil))
		require.NoError(t, err)
	})
}
