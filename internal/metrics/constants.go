package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every garden metric
const Namespace = "garden"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Gameplay metric names
const (
	MetricNameSeedsPlanted         = "seeds_planted_total"
	MetricNameFruitsHarvested      = "fruits_harvested_total"
	MetricNameFruitsSold           = "fruits_sold_total"
	MetricNameItemsBought          = "items_bought_total"
	MetricNameCoinsEarned          = "coins_earned_total"
	MetricNameCoinsSpent           = "coins_spent_total"
	MetricNameCodesRedeemed        = "codes_redeemed_total"
	MetricNameBoostsActivated      = "boosts_activated_total"
	MetricNameSnapshotSaveFailures = "snapshot_save_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Gameplay metric help text
const (
	HelpTextSeedsPlanted         = "Total number of seeds planted"
	HelpTextFruitsHarvested      = "Total number of fruits harvested"
	HelpTextFruitsSold           = "Total number of fruits sold"
	HelpTextItemsBought          = "Total number of seeds and gear bought"
	HelpTextCoinsEarned          = "Total coins earned from sales and codes"
	HelpTextCoinsSpent           = "Total coins spent buying seeds and gear"
	HelpTextCodesRedeemed        = "Total number of promotional codes redeemed"
	HelpTextBoostsActivated      = "Total number of timed boost activations"
	HelpTextSnapshotSaveFailures = "Total number of snapshot saves that failed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics. promhttp requires the code and
// method names for the HTTP vectors.
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelCode   = "code"
	LabelType   = "type"
	LabelItem   = "item"
	LabelSeed   = "seed"
	LabelEvent  = "event"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// HTTP Paths
// ============================================================================

const (
	PathMetrics   = "/metrics"
	PathHealth    = "/healthz"
	PathUnmatched = "unmatched"
	HealthzBody   = "ok"
)

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
