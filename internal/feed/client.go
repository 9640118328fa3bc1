// Package feed fetches live positions from the FlightRadar24 public feed.
//
// The feed caps each query at roughly 1500 flights, so a worldwide snapshot
// is assembled from a fixed grid of bounding-box tiles fetched concurrently
// and deduplicated by flight ID.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Riley-LeLay/skycards/pkg/models"
)

const (
	defaultBaseURL = "https://data-cloud.flightradar24.com/zones/fcgi/feed.js"

	// Feed rate limits are undocumented; one worldwide sweep every few
	// seconds stays well below what the public endpoint tolerates.
	defaultPollInterval = 10 * time.Second

	defaultTileConcurrency = 6

	// Connection pool settings
	maxIdleConns        = 10
	maxConnsPerHost     = 6
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second

	// Retry settings
	maxRetries    = 3
	baseBackoff   = 1 * time.Second
	maxBackoff    = 30 * time.Second
	backoffFactor = 2.0
)

// ---------------------------------------------------------------------------
// World tiling
// ---------------------------------------------------------------------------

// BoundingBox is a geographic query window.
type BoundingBox struct {
	South float64
	North float64
	West  float64
	East  float64
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%.1f,%.1f,%.1f,%.1f", b.North, b.South, b.West, b.East)
}

// worldTiles returns the static grid covering the whole globe. Polar bands
// are sparse enough for single wide tiles; the busy mid-latitudes get a
// finer longitude split to stay under the per-query flight cap.
func worldTiles() []BoundingBox {
	var tiles []BoundingBox

	// Arctic and Antarctic, one tile per hemisphere half.
	tiles = append(tiles,
		BoundingBox{South: 60, North: 90, West: -180, East: 0},
		BoundingBox{South: 60, North: 90, West: 0, East: 180},
		BoundingBox{South: -90, North: -60, West: -180, East: 0},
		BoundingBox{South: -90, North: -60, West: 0, East: 180},
	)

	// Mid latitudes in 30-degree bands, 30-degree longitude columns.
	for lat := -60.0; lat < 60; lat += 30 {
		for lon := -180.0; lon < 180; lon += 30 {
			tiles = append(tiles, BoundingBox{
				South: lat, North: lat + 30,
				West: lon, East: lon + 30,
			})
		}
	}
	return tiles
}

// ---------------------------------------------------------------------------
// Rate limiter
// ---------------------------------------------------------------------------

// RateLimiter spaces out worldwide sweeps.
type RateLimiter struct {
	interval time.Duration
	mu       sync.Mutex
	lastCall time.Time
}

// NewRateLimiter creates a rate limiter with the given interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until the next sweep is allowed.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastCall.IsZero() {
		r.lastCall = time.Now()
		return nil
	}

	elapsed := time.Since(r.lastCall)
	if elapsed < r.interval {
		select {
		case <-time.After(r.interval - elapsed):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the feed endpoint (useful for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithTileConcurrency caps how many tiles are fetched in parallel.
func WithTileConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.tileConcurrency = n
		}
	}
}

// WithTiles replaces the worldwide tile grid (useful for testing or for
// narrowing the sweep to one region).
func WithTiles(tiles []BoundingBox) ClientOption {
	return func(c *Client) { c.tiles = tiles }
}

// Client fetches live flight data from the FlightRadar24 feed.
type Client struct {
	baseURL         string
	httpClient      *http.Client
	tiles           []BoundingBox
	tileConcurrency int
}

// NewClient creates a feed client with connection pooling.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}

	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		tiles:           worldTiles(),
		tileConcurrency: defaultTileConcurrency,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchLive sweeps every tile concurrently and returns the combined,
// deduplicated snapshot. A tile that fails is logged and skipped; the
// sweep only errors when the context is cancelled.
func (c *Client) FetchLive(ctx context.Context) ([]models.Flight, error) {
	results := make([][]models.Flight, len(c.tiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.tileConcurrency)
	for i, tile := range c.tiles {
		i, tile := i, tile
		g.Go(func() error {
			flights, err := c.fetchTile(gctx, tile)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("feed: tile %s failed: %v", tile, err)
				return nil
			}
			results[i] = flights
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var combined []models.Flight
	for _, tileFlights := range results {
		for _, f := range tileFlights {
			if f.FlightID == "" {
				continue
			}
			if _, dup := seen[f.FlightID]; dup {
				continue
			}
			seen[f.FlightID] = struct{}{}
			combined = append(combined, f)
		}
	}
	return combined, nil
}

// FetchLiveWithRetry sweeps with exponential backoff on failure.
func (c *Client) FetchLiveWithRetry(ctx context.Context) ([]models.Flight, error) {
	var lastErr error
	backoff := baseBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff = time.Duration(float64(backoff) * backoffFactor)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		flights, err := c.FetchLive(ctx)
		if err == nil {
			return flights, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}

// fetchTile requests one bounding box from the feed.
func (c *Client) fetchTile(ctx context.Context, tile BoundingBox) ([]models.Flight, error) {
	q := url.Values{
		"bounds":    {tile.String()},
		"faa":       {"1"},
		"satellite": {"1"},
		"mlat":      {"1"},
		"adsb":      {"1"},
		"gnd":       {"1"},
		"air":       {"1"},
		"estimated": {"1"},
		"maxage":    {"14400"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return parseFeed(body)
}

// parseFeed decodes the feed payload. The top-level object maps flight IDs
// to positional arrays, alongside scalar bookkeeping keys (full_count,
// version) that are skipped.
//
// Array layout: [icao24, lat, lon, track, altitude, ground_speed, squawk,
// radar, typecode, registration, timestamp, origin, destination,
// flight_number, on_ground, vertical_speed, callsign, ...].
func parseFeed(body []byte) ([]models.Flight, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	flights := make([]models.Flight, 0, len(raw))
	for id, msg := range raw {
		var fields []interface{}
		if err := json.Unmarshal(msg, &fields); err != nil {
			// Scalar bookkeeping key, not a flight row.
			continue
		}
		if len(fields) < 17 {
			continue
		}
		f := models.Flight{
			FlightID:     id,
			Latitude:     floatVal(fields[1]),
			Longitude:    floatVal(fields[2]),
			Altitude:     floatVal(fields[4]),
			GroundSpeed:  floatVal(fields[5]),
			TypeCode:     stringVal(fields[8]),
			Registration: stringVal(fields[9]),
			Timestamp:    time.Unix(int64(floatVal(fields[10])), 0),
			Origin:       stringVal(fields[11]),
			Destination:  stringVal(fields[12]),
			OnGround:     floatVal(fields[14]) != 0,
			Callsign:     stringVal(fields[16]),
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func stringVal(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func floatVal(v interface{}) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return 0
}
