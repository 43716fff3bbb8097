package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "xnova"

// Metrics groups the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	searchResults prometheus.Histogram
	emptySearches prometheus.Counter
	sessions      *prometheus.CounterVec
	bookings      *prometheus.CounterVec
	catalogVenues prometheus.Gauge
	catalogAge    prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "venue_search_results",
			Help:      "Number of venues returned per search.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		emptySearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_search_empty_total",
			Help:      "Searches that matched no venue.",
		}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_sessions_total",
			Help:      "Booking wizard sessions by outcome (opened, closed, confirmed).",
		}, []string{"outcome"}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "Confirmed bookings by payment method.",
		}, []string{"payment_method"}),
		catalogVenues: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_venues",
			Help:      "Venues in the current catalogue snapshot.",
		}),
		catalogAge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_generated_timestamp_seconds",
			Help:      "Unix time the current catalogue snapshot was generated.",
		}),
	}
	reg.MustRegister(
		m.httpRequests, m.httpDuration, m.searchResults, m.emptySearches,
		m.sessions, m.bookings, m.catalogVenues, m.catalogAge,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSearch(results int) {
	if m == nil {
		return
	}
	m.searchResults.Observe(float64(results))
	if results == 0 {
		m.emptySearches.Inc()
	}
}

func (m *Metrics) SessionEvent(outcome string) {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) BookingConfirmed(paymentMethod string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(paymentMethod).Inc()
}

func (m *Metrics) CatalogRefreshed(venues int, generatedAt time.Time) {
	if m == nil {
		return
	}
	m.catalogVenues.Set(float64(venues))
	m.catalogAge.Set(float64(generatedAt.Unix()))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency labelled by the mux route
// template, so path variables do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
