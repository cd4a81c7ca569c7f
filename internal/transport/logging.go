package transport

import (
	"net/http"
	"time"

	"github.com/nkiryanov/eventdesk/internal/logger"
)

func Logging(l logger.Logger) Middleware {
	l = logger.OrNoOp(l)

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(req)
			if err != nil {
				l.Warn(
					"HTTP request failed",
					"method", req.Method,
					"path", req.URL.Path,
					"request_id", req.Header.Get(RequestIDHeader),
					"duration", time.Since(start),
					"error", err,
				)
				return nil, err
			}

			l.Debug(
				"got HTTP response",
				"method", req.Method,
				"path", req.URL.Path,
				"request_id", req.Header.Get(RequestIDHeader),
				"duration", time.Since(start),
				"status", resp.StatusCode,
				"size", resp.ContentLength,
			)
			return resp, nil
		})
	}
}
