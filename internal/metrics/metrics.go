// Package metrics defines the Prometheus instruments for the calculation
// domain and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CalculationsTotal counts calculation requests by slug and outcome.
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tanihitung_calculations_total",
		Help: "Total number of calculation requests.",
	}, []string{"slug", "status"})

	// CalculationDuration observes calculation handler latency in seconds.
	CalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tanihitung_calculation_duration_seconds",
		Help:    "Duration of calculation requests.",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	})

	// ExportsTotal counts CSV history exports.
	ExportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tanihitung_history_exports_total",
		Help: "Total number of CSV history exports.",
	})

	// ResultsSaved counts persisted calculation results.
	ResultsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tanihitung_results_saved_total",
		Help: "Total number of calculation results saved to history.",
	})
)

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
