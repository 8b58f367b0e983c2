package app

const (
	// Output file names inside the configured output directory. Each run
	// overwrites them so the newest report is always at a stable path.
	LatestMarkdownFile = "latest_run.md"
	LatestJSONFile     = "latest_run.json"

	// timestampLayout is an ISO-8601 timestamp truncated to seconds.
	timestampLayout = "2006-01-02T15:04:05"
)

// Log messages
const (
	LogMsgRunStarted      = "Scheduling run started"
	LogMsgRunCompleted    = "Scheduling run completed"
	LogMsgRunFailed       = "Scheduling run failed"
	LogMsgCatalogLoaded   = "Recipe catalog loaded"
	LogMsgPricesFetched   = "Price dump fetched"
	LogMsgReportWritten   = "Report files written"
	LogMsgHistorySaved    = "Run saved to history"
	LogMsgDigestSent      = "Webhook digest sent"
	LogMsgDigestFailed    = "Webhook digest delivery failed"
	LogMsgHistoryFailed   = "History save failed"
	LogMsgNoWebhookConfig = "No webhook configured, skipping digest"
)
