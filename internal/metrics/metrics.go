package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	StatusTransitionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_status_transitions_total",
			Help: "Total number of company status transitions.",
		},
		[]string{"from", "to"},
	)
	IntegrityWarningsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_integrity_warnings_total",
			Help: "Total number of records whose stored status disagreed with its fields.",
		},
	)
	UpsertsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_upserts_total",
			Help: "Total number of company record upserts.",
		},
	)
	DashboardDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_dashboard_generation_duration_seconds",
			Help:    "Duration of each dashboard generation in seconds.",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 5},
		},
	)
)

func StartMetricsServer(addr string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(StatusTransitionsCounter)
	prometheus.MustRegister(IntegrityWarningsCounter)
	prometheus.MustRegister(UpsertsCounter)
	prometheus.MustRegister(DashboardDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(addr, nil))
	}()
}
