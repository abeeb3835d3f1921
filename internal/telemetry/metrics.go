package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FramesProcessed counts frames handed to the decode pipeline, by
	// classified frame type ("beacon", "probe-resp", "action") or
	// "unsupported"/"malformed" for frames the classifier rejected.
	FramesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ridwatch",
			Name:      "frames_processed_total",
			Help:      "Total number of frames handed to the decode pipeline",
		},
		[]string{"frame_type"},
	)

	// DetectionsEmitted counts publishable detections by extraction path.
	DetectionsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ridwatch",
			Name:      "detections_emitted_total",
			Help:      "Total number of publishable Remote ID detections emitted",
		},
		[]string{"source"},
	)

	// PatternRejected counts fallback matches dropped below the
	// significant-length threshold.
	PatternRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ridwatch",
			Name:      "pattern_rejected_total",
			Help:      "Total number of pattern matches rejected as insignificant",
		},
	)

	// SessionsActive tracks live per-transmitter sessions.
	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ridwatch",
			Name:      "sessions_active",
			Help:      "Number of live Remote ID sessions",
		},
	)

	// SessionsPruned counts sessions dropped by TTL expiry.
	SessionsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ridwatch",
			Name:      "sessions_pruned_total",
			Help:      "Total number of sessions pruned after their TTL",
		},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Idempotent; safe to call from every entry point.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(FramesProcessed)
		prometheus.DefaultRegisterer.Register(DetectionsEmitted)
		prometheus.DefaultRegisterer.Register(PatternRejected)
		prometheus.DefaultRegisterer.Register(SessionsActive)
		prometheus.DefaultRegisterer.Register(SessionsPruned)
	})
}
