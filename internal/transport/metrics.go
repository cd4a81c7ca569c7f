package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are client side: what we send to the API and how the session behaves.
// A nil *Metrics is valid and records nothing
type Metrics struct {
	inFlight    prometheus.Gauge
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	refreshes   *prometheus.CounterVec
	expirations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eventdesk_http_client_in_flight_requests",
			Help: "In-flight requests to the API.",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventdesk_http_client_requests_total",
				Help: "Total number of requests sent to the API.",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "eventdesk_http_client_request_duration_seconds",
				Help:    "API request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventdesk_session_refreshes_total",
				Help: "Access token refresh attempts by outcome.",
			},
			[]string{"outcome"},
		),
		expirations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "eventdesk_session_expirations_total",
				Help: "Sessions terminated by trigger.",
			},
			[]string{"trigger"},
		),
	}

	reg.MustRegister(m.inFlight, m.requests, m.duration, m.refreshes, m.expirations)
	return m
}

func (m *Metrics) Refresh(outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Expired(trigger string) {
	if m == nil {
		return
	}
	m.expirations.WithLabelValues(trigger).Inc()
}

// Instrument measures requests per method and status. Transport failures are counted with status "error"
func Instrument(m *Metrics) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if m == nil {
			return next
		}

		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			m.inFlight.Inc()
			defer m.inFlight.Dec()
			start := time.Now()

			resp, err := next.RoundTrip(req)

			status := "error"
			if err == nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			m.duration.WithLabelValues(req.Method, status).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(req.Method, status).Inc()

			return resp, err
		})
	}
}
