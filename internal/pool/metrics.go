package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels of requestsTotal.
const (
	resultOK       = "ok"
	resultError    = "error"
	resultPanic    = "panic"
	resultRejected = "rejected"
	resultClosed   = "closed"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunnyway_pool_requests_total",
		Help: "Route requests handled by a navigator pool, by result",
	}, []string{"pool", "result"})

	queueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sunnyway_pool_queue_depth",
		Help: "Requests waiting in a navigator pool mailbox",
	}, []string{"pool"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sunnyway_pool_search_duration_seconds",
		Help:    "Time a worker spent on one route search",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"pool"})
)
