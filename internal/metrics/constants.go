package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCheckoutsCompleted   = "checkouts_completed_total"
	MetricNameCheckinsCompleted    = "checkins_completed_total"
	MetricNameUnitsCheckedOut      = "units_checked_out_total"
	MetricNameUnitsRestored        = "units_restored_total"
	MetricNameCartMutations        = "cart_mutations_total"
	MetricNameCartAdjustments      = "cart_adjustments_total"
	MetricNameStockExhaustions     = "stock_exhaustions_total"
	MetricNameWriteConflictRetries = "write_conflict_retries_total"
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

// Business metric help text
const (
	HelpTextCheckoutsCompleted   = "Total number of committed checkouts"
	HelpTextCheckinsCompleted    = "Total number of completed check-ins"
	HelpTextUnitsCheckedOut      = "Total units of stock decremented by checkouts"
	HelpTextUnitsRestored        = "Total units of stock restored by check-ins"
	HelpTextCartMutations        = "Total number of cart mutations"
	HelpTextCartAdjustments      = "Total number of reconciliation adjustments"
	HelpTextStockExhaustions     = "Total number of checkouts aborted for insufficient stock"
	HelpTextWriteConflictRetries = "Total number of optimistic-concurrency conflicts retried"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
	LabelCheckoutType = "checkout_type"
	LabelAction       = "action"
	LabelLocation     = "location"
)

// RouteLabelUnmatched is the path label for requests that matched no route
const RouteLabelUnmatched = "unmatched"

// HTTPLatencyBuckets are the histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
