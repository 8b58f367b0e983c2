package server

const (
	// reportCacheSize bounds the in-memory LRU of decoded run reports.
	reportCacheSize = 32

	// recentRunsLimit caps the number of entries returned by the run listing.
	recentRunsLimit = 20

	contentTypeJSON     = "application/json"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
)
