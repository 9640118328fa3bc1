package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.skycards.oldapes.com"

	// The models endpoint only accepts requests that look like the mobile
	// client, hence the pinned User-Agent and client version headers.
	userAgent     = "SkyCards/3.0.0 (iPhone; iOS 18.0)"
	clientVersion = "3.0.0"

	// Rarity data changes rarely (roughly twice a year); six hours keeps
	// restarts cheap without going stale for long.
	defaultCacheMaxAge = 6 * time.Hour
)

// ClientOption configures the catalog Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithCacheFile enables the on-disk JSON cache at the given path.
func WithCacheFile(path string) ClientOption {
	return func(c *Client) { c.cachePath = path }
}

// WithCacheMaxAge sets how long a cached catalog stays fresh.
func WithCacheMaxAge(d time.Duration) ClientOption {
	return func(c *Client) { c.cacheMaxAge = d }
}

// Client fetches the aircraft models catalog from the Skycards API, with an
// optional on-disk cache so repeated runs don't hammer the endpoint.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	cachePath   string
	cacheMaxAge time.Duration
}

// NewClient creates a catalog client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		cacheMaxAge: defaultCacheMaxAge,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// cachedCatalog wraps the catalog with the time it was written to disk.
type cachedCatalog struct {
	CachedAt int64 `json:"_cached_at"`
	Catalog
}

// Fetch returns the models catalog, preferring a fresh on-disk cache.
func (c *Client) Fetch(ctx context.Context) (*Catalog, error) {
	if cached, ok := c.loadCache(); ok {
		cached.Source = "cache"
		return cached, nil
	}

	cat, err := c.fetchRemote(ctx)
	if err != nil {
		return nil, err
	}
	cat.Source = "remote"
	c.saveCache(cat)
	return cat, nil
}

// fetchRemote retrieves the full models database from the API.
func (c *Client) fetchRemote(ctx context.Context) (*Catalog, error) {
	url := fmt.Sprintf("%s/models?updatedAt=0", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Client-Version", clientVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(body, &cat); err != nil {
		return nil, fmt.Errorf("parsing models response: %w", err)
	}
	return &cat, nil
}

// loadCache returns the cached catalog if present and fresh enough.
func (c *Client) loadCache() (*Catalog, bool) {
	if c.cachePath == "" {
		return nil, false
	}
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return nil, false
	}
	var cached cachedCatalog
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false
	}
	if time.Since(time.Unix(cached.CachedAt, 0)) >= c.cacheMaxAge {
		return nil, false
	}
	return &cached.Catalog, true
}

// saveCache writes the catalog to the cache file. Failures are ignored:
// the cache is an optimization, never a requirement.
func (c *Client) saveCache(cat *Catalog) {
	if c.cachePath == "" {
		return
	}
	data, err := json.Marshal(cachedCatalog{
		CachedAt: time.Now().Unix(),
		Catalog:  *cat,
	})
	if err != nil {
		return
	}
	_ = os.WriteFile(c.cachePath, data, 0o644)
}
