package transport

import (
	"net/http"
)

// Middleware wraps a round tripper the way server middlewares wrap handlers
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc allows to use a function as http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain applies middlewares in the given order: m1(m2(...(rt)))
func Chain(rt http.RoundTripper, mws ...Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}
