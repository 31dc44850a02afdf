package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobdeck_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	GeocodeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobdeck_geocode_duration_seconds",
			Help:    "Duration of each address geocoding call in seconds.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
	GeocodeRetriesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobdeck_geocode_retries_total",
			Help: "Total number of retried geocoding calls.",
		},
	)
	JobsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobdeck_jobs_created_total",
			Help: "Total number of created job postings.",
		},
	)
	NearQueryDuration = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name:       "jobdeck_near_query_duration_seconds",
			Help:       "Duration of radius job queries.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(GeocodeDuration)
	prometheus.MustRegister(GeocodeRetriesCounter)
	prometheus.MustRegister(JobsCreatedCounter)
	prometheus.MustRegister(NearQueryDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":"+strconv.Itoa(port), nil))
	}()
}
