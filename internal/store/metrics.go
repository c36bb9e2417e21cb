package store

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "loads_total",
			Help:      "Models made resident, by format and origin",
		},
		[]string{"format", "origin"},
	)

	evictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "evictions_total",
			Help:      "Resident models evicted to respect max_resident",
		},
	)

	residentGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "resident_models",
			Help:      "Models currently resident",
		},
	)

	captureDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "capture_duration_seconds",
			Help:      "Time to capture a model into bytes",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format", "result"},
	)

	restoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "restore_duration_seconds",
			Help:      "Time to reconstruct a model from bytes",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format", "result"},
	)

	capturedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelpack",
			Subsystem: "store",
			Name:      "captured_bytes_total",
			Help:      "Bytes produced by captures",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, evictionsTotal, residentGauge, captureDuration, restoreDuration, capturedBytes)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
