// Package metrics holds the Prometheus collectors for the offer engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons used as the "reason" label.
const (
	ReasonNotFound            = "not_found"
	ReasonUnauthorized        = "unauthorized"
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonDailyLimit          = "daily_limit"
	ReasonInvalidInput        = "invalid_input"
	ReasonInternal            = "internal"
)

// Metrics is the set of offer engine collectors, registered on its own registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	OffersCreated   prometheus.Counter
	OffersRejected  *prometheus.CounterVec
	OffersUnlisted  prometheus.Counter
	ListingDuration *prometheus.HistogramVec
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OffersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "offer_ledger",
			Name:      "offers_created_total",
			Help:      "Offers admitted and persisted.",
		}),
		OffersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "offer_ledger",
			Name:      "offers_rejected_total",
			Help:      "Offer admissions refused, by reason.",
		}, []string{"reason"}),
		OffersUnlisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "offer_ledger",
			Name:      "offers_unlisted_total",
			Help:      "Successful unlist requests.",
		}),
		ListingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "offer_ledger",
			Name:      "list_offers_duration_seconds",
			Help:      "Time spent listing offers, by mode.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		m.OffersCreated,
		m.OffersRejected,
		m.OffersUnlisted,
		m.ListingDuration,
	)
	return m
}

// CacheStats reports the cumulative hits and misses of a lookup cache.
type CacheStats func() (hits, misses uint64)

// RegisterCache publishes a lookup cache's hit and miss counts, labelled
// with the cache name. Each name may be registered once.
func (m *Metrics) RegisterCache(name string, stats CacheStats) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{"cache": name}
	m.registry.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "offer_ledger",
			Name:        "reference_cache_hits_total",
			Help:        "Reference lookups served from the in-process cache.",
			ConstLabels: labels,
		}, func() float64 {
			hits, _ := stats()
			return float64(hits)
		}),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "offer_ledger",
			Name:        "reference_cache_misses_total",
			Help:        "Reference lookups that fell through to the database.",
			ConstLabels: labels,
		}, func() float64 {
			_, misses := stats()
			return float64(misses)
		}),
	)
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OfferCreated() {
	if m == nil {
		return
	}
	m.OffersCreated.Inc()
}

func (m *Metrics) OfferRejected(reason string) {
	if m == nil {
		return
	}
	m.OffersRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) OfferUnlisted() {
	if m == nil {
		return
	}
	m.OffersUnlisted.Inc()
}

func (m *Metrics) ObserveListing(mode string, seconds float64) {
	if m == nil {
		return
	}
	m.ListingDuration.WithLabelValues(mode).Observe(seconds)
}
