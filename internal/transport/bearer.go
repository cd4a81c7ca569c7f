package transport

import (
	"net/http"
)

type TokenSource interface {
	Token() string
}

func bearer(token string) string {
	return "Bearer " + token
}

// Bearer attaches the current access token. Requests that already carry Authorization pass untouched
func Bearer(ts TokenSource) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token := ts.Token()
			if token == "" || req.Header.Get("Authorization") != "" {
				return next.RoundTrip(req)
			}

			r := req.Clone(req.Context())
			r.Header.Set("Authorization", bearer(token))
			return next.RoundTrip(r)
		})
	}
}
