package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/osrs-econ/herbsched/internal/logger"
)

const (
	userAgent = "HerbloreScheduler/1.0"

	// dumpCacheKey is the single cache slot for the fetched dump; the client
	// only ever talks to one source URL.
	dumpCacheKey = "price_dump"
)

// Client fetches the raw GE price dump. Fetches are cached with a TTL so
// catalog-edit triggered re-runs in serve mode do not hammer the API.
type Client struct {
	url        string
	httpClient *http.Client
	cache      *gocache.Cache
}

// NewClient creates a price dump client for the given source URL. A zero
// cacheTTL disables caching, which is what the one-shot run uses.
func NewClient(url string, timeout, cacheTTL time.Duration) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
	if cacheTTL > 0 {
		c.cache = gocache.New(cacheTTL, 2*cacheTTL)
	}
	return c
}

// URL returns the price source identifier recorded in run reports.
func (c *Client) URL() string {
	return c.url
}

// FetchDump retrieves and decodes the price dump. The decoded value keeps its
// loose JSON shape; BuildIndex does the schema probing.
func (c *Client) FetchDump(ctx context.Context) (any, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(dumpCacheKey); ok {
			logger.FromContext(ctx).Debug("Price dump served from cache", "url", c.url)
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price dump: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read price dump: %w", err)
	}

	var dump any
	if err := json.Unmarshal(body, &dump); err != nil {
		return nil, fmt.Errorf("failed to decode price dump: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(dumpCacheKey, dump, gocache.DefaultExpiration)
	}

	logger.FromContext(ctx).Info("Fetched price dump", "url", c.url, "bytes", len(body))
	return dump, nil
}
