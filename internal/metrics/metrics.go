// Package metrics defines Prometheus metrics for the market client
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketfetcher"

// Request metrics
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of market requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of market requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	ValidationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Calls rejected before any request was made, by parameter.",
	}, []string{"param"})
)

// Listing collection metrics
var (
	ListingPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_pages_total",
		Help:      "Total number of search pages fetched while collecting listings.",
	})
)

// Image metrics
var (
	ImageResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_resolutions_total",
		Help:      "Image lookups by resolution path (cdn, scrape, none).",
	}, []string{"path"})
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Image path labels
const (
	ImagePathCDN    = "cdn"
	ImagePathScrape = "scrape"
	ImagePathNone   = "none"
)
