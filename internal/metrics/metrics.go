package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sectorpulse_runs_total", Help: "Classification runs by outcome"},
		[]string{"trigger", "outcome"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sectorpulse_run_duration_seconds",
			Help:    "End-to-end classification run duration",
			Buckets: prometheus.DefBuckets,
		},
	)
	StructureCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "sectorpulse_structure_count", Help: "Instruments per direction label in the latest run"},
		[]string{"label"},
	)
	BarsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sectorpulse_bars_ingested_total", Help: "Daily bars stored per ticker"},
		[]string{"ticker"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, RunDuration, StructureCount, BarsIngested)
}

// Handler exposes the default registry for mounting on the API router
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records one classification run outcome
func ObserveRun(trigger string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	RunsTotal.WithLabelValues(trigger, outcome).Inc()
	if err == nil {
		RunDuration.Observe(seconds)
	}
}
