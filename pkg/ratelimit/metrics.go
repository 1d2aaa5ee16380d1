package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check result labels.
const (
	resultAllowed  = "allowed"
	resultRejected = "rejected"
	resultSkipped  = "skipped"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rampart_ratelimit_checks_total",
			Help: "Total number of rate limit checks performed",
		},
		[]string{"result"},
	)

	rejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rampart_ratelimit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	trackedKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rampart_ratelimit_tracked_keys",
			Help: "Current number of keys with an active window, summed across limiters",
		},
	)
)
