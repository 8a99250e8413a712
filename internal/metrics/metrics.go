package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CheckoutsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCheckoutsCompleted,
			Help: HelpTextCheckoutsCompleted,
		},
		[]string{LabelCheckoutType},
	)

	CheckinsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCheckinsCompleted,
			Help: HelpTextCheckinsCompleted,
		},
	)

	UnitsCheckedOut = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsCheckedOut,
			Help: HelpTextUnitsCheckedOut,
		},
		[]string{LabelCheckoutType},
	)

	UnitsRestored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUnitsRestored,
			Help: HelpTextUnitsRestored,
		},
	)

	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCartMutations,
			Help: HelpTextCartMutations,
		},
		[]string{LabelAction},
	)

	CartAdjustments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCartAdjustments,
			Help: HelpTextCartAdjustments,
		},
	)

	StockExhaustions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStockExhaustions,
			Help: HelpTextStockExhaustions,
		},
	)

	WriteConflictRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWriteConflictRetries,
			Help: HelpTextWriteConflictRetries,
		},
	)
)
