// Package metrics exposes the Prometheus counters and gauges the upload
// pipeline updates as it works: uploads in flight, posts by result, and
// the confirmation state the status journal observes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UploadsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "arup",
		Name:      "uploads_in_flight",
		Help:      "Number of uploads currently assembling, signing, or posting.",
	})

	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arup",
		Name:      "uploads_total",
		Help:      "Completed uploads by result.",
	}, []string{"result"})

	BytesUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "arup",
		Name:      "bytes_uploaded_total",
		Help:      "Total bytes of source file data posted to the network.",
	})

	PostDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "arup",
		Name:      "post_duration_seconds",
		Help:      "Wall time of a single POST tx/ call.",
		Buckets:   prometheus.DefBuckets,
	})

	StatusChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "arup",
		Name:      "status_checks_total",
		Help:      "Status reconciliation calls by resulting status.",
	}, []string{"status"})

	ConfirmedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "arup",
		Name:      "confirmed_total",
		Help:      "Total uploads observed transitioning to Confirmed.",
	})
)

func init() {
	prometheus.MustRegister(
		UploadsInFlight,
		UploadsTotal,
		BytesUploaded,
		PostDuration,
		StatusChecksTotal,
		ConfirmedTotal,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
