package transport

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit holds requests until the limiter allows them or the request context is done
func RateLimit(lim *rate.Limiter) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if lim == nil {
			return next
		}

		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if err := lim.Wait(req.Context()); err != nil {
				return nil, fmt.Errorf("rate limit: %w", err)
			}
			return next.RoundTrip(req)
		})
	}
}

// NewLimiter returns a limiter for perSecond requests, or nil when limiting is off
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}

	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
