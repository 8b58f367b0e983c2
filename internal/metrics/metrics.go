package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run metrics
var (
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRunsTotal,
			Help: HelpTextRunsTotal,
		},
		[]string{LabelStatus},
	)

	RecipesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesEvaluated,
			Help: HelpTextRecipesEvaluated,
		},
	)

	InvalidRecipes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameInvalidRecipes,
			Help: HelpTextInvalidRecipes,
		},
	)

	Alerts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAlerts,
			Help: HelpTextAlerts,
		},
	)

	PriceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePriceFetchDuration,
			Help:    HelpTextPriceFetchDuration,
			Buckets: prometheus.DefBuckets,
		},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameEvaluationDuration,
			Help:    HelpTextEvaluationDuration,
			Buckets: prometheus.DefBuckets,
		},
	)

	WebhookDeliveryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWebhookDeliveryErrors,
			Help: HelpTextWebhookDeliveryErrors,
		},
	)
)

// HTTP metrics for serve mode
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
)
