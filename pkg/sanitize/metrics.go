package sanitize

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels for rejection metrics.
const (
	opString = "string"
	opPath   = "path"
	opJSON   = "json"
	opNumber = "number"
)

var (
	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rampart_sanitize_rejections_total",
			Help: "Total number of inputs rejected by the sanitizer",
		},
		[]string{"operation"},
	)

	redactionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rampart_sanitize_redaction_failures_total",
			Help: "Total number of SanitizeForLogging calls that degraded to the failure sentinel",
		},
	)
)
