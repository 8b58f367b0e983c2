package metrics

// Run metric names
const (
	MetricNameRunsTotal             = "herbsched_runs_total"
	MetricNameRecipesEvaluated      = "herbsched_recipes_evaluated_total"
	MetricNameInvalidRecipes        = "herbsched_invalid_recipes_total"
	MetricNameAlerts                = "herbsched_alerts_total"
	MetricNamePriceFetchDuration    = "herbsched_price_fetch_duration_seconds"
	MetricNameEvaluationDuration    = "herbsched_evaluation_duration_seconds"
	MetricNameWebhookDeliveryErrors = "herbsched_webhook_delivery_errors_total"
)

// HTTP metric names (serve mode)
const (
	MetricNameHTTPRequestsTotal   = "http_requests_total"
	MetricNameHTTPRequestDuration = "http_request_duration_seconds"
)

// Metric help text
const (
	HelpTextRunsTotal             = "Total number of scheduling runs by outcome"
	HelpTextRecipesEvaluated      = "Total number of recipes evaluated"
	HelpTextInvalidRecipes        = "Total number of recipes found invalid"
	HelpTextAlerts                = "Total number of alert recipes found"
	HelpTextPriceFetchDuration    = "Price dump fetch latency in seconds"
	HelpTextEvaluationDuration    = "Full catalog evaluation latency in seconds"
	HelpTextWebhookDeliveryErrors = "Total number of failed webhook deliveries"
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
)

// Metric label names
const (
	LabelStatus = "status"
	LabelMethod = "method"
	LabelPath   = "path"
)

// Run outcome label values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
