package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Riley-LeLay/skycards/internal/airports"
	"github.com/Riley-LeLay/skycards/internal/catalog"
	"github.com/Riley-LeLay/skycards/internal/challenge"
	"github.com/Riley-LeLay/skycards/internal/feed"
	"github.com/Riley-LeLay/skycards/internal/match"
	"github.com/Riley-LeLay/skycards/internal/metrics"
	"github.com/Riley-LeLay/skycards/pkg/models"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// Config holds application configuration.
type Config struct {
	// Server
	HTTPAddr string
	HTTPPort int

	// Map output
	MinRarity float64

	// Challenge texts, semicolon-separated in the environment
	Challenges []string

	// Feed
	PollInterval  time.Duration
	EnableRefresh bool

	// Catalog cache
	CatalogCacheFile string
	CatalogCacheAge  time.Duration

	// Logging (empty file means stderr only)
	LogFile      string
	LogMaxSizeMB int
	LogMaxFiles  int
}

func loadConfig() Config {
	// .env is optional; missing file is not an error.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:         getEnv("HTTP_ADDR", "127.0.0.1"),
		HTTPPort:         getEnvInt("HTTP_PORT", 5050),
		MinRarity:        getEnvFloat("MIN_RARITY", 10.0),
		PollInterval:     getEnvDuration("POLL_INTERVAL", 10*time.Second),
		EnableRefresh:    getEnvBool("ENABLE_REFRESH", true),
		CatalogCacheFile: getEnv("CATALOG_CACHE", "skycards_catalog.json"),
		CatalogCacheAge:  getEnvDuration("CATALOG_CACHE_AGE", 6*time.Hour),
		LogFile:          getEnv("LOG_FILE", ""),
		LogMaxSizeMB:     getEnvInt("LOG_MAX_SIZE_MB", 20),
		LogMaxFiles:      getEnvInt("LOG_MAX_FILES", 3),
	}

	if raw := getEnv("CHALLENGES", ""); raw != "" {
		for _, text := range strings.Split(raw, ";") {
			if text = strings.TrimSpace(text); text != "" {
				cfg.Challenges = append(cfg.Challenges, text)
			}
		}
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// ---------------------------------------------------------------------------
// Application
// ---------------------------------------------------------------------------

// taggedFlight is a snapshot entry: an enriched flight plus the 1-indexed
// challenge that matched it, when any.
type taggedFlight struct {
	models.Flight
	Challenge int `json:"challenge,omitempty"`
}

// challengeInfo describes one active challenge for the API.
type challengeInfo struct {
	Number      int    `json:"number"`
	Text        string `json:"text"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// App wires the directory, catalog, parser, matcher and feed into the
// refresh loop and HTTP server.
type App struct {
	config  Config
	dir     *airports.Directory
	regions *airports.RegionTable
	rarity  catalog.RarityLookup
	parser  *challenge.Parser
	matcher *match.Matcher
	feed    *feed.Client
	limiter *feed.RateLimiter
	metrics *metrics.Metrics
	server  *http.Server

	filters []challenge.Filter

	mu        sync.RWMutex
	snapshot  []taggedFlight
	updatedAt time.Time

	startTime time.Time
	ready     bool
}

// NewApp fetches the aircraft catalog and assembles all components. The
// challenge texts are parsed once here; refreshes reuse the filters.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	catClient := catalog.NewClient(
		catalog.WithCacheFile(cfg.CatalogCacheFile),
		catalog.WithCacheMaxAge(cfg.CatalogCacheAge),
	)
	cat, err := catClient.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching aircraft catalog: %w", err)
	}
	log.Printf("Catalog loaded from %s: %d aircraft types", cat.Source, len(cat.Rows))

	dir := airports.NewDirectory()
	regions := airports.BuildRegionTable(dir)
	m := metrics.New()
	m.CatalogRows.Set(float64(len(cat.Rows)))
	m.CatalogFetchTotal.WithLabelValues(cat.Source).Inc()

	app := &App{
		config:    cfg,
		dir:       dir,
		regions:   regions,
		rarity:    catalog.BuildRarityLookup(cat),
		parser:    challenge.NewParser(dir, cat),
		matcher:   match.NewMatcher(dir, regions),
		feed:      feed.NewClient(),
		limiter:   feed.NewRateLimiter(cfg.PollInterval),
		metrics:   m,
		startTime: time.Now(),
	}

	app.filters = app.parser.ParseAll(cfg.Challenges)
	for i, f := range app.filters {
		m.ChallengesParsed.WithLabelValues(f.Kind().String()).Inc()
		log.Printf("Challenge %d [%s]: %s", i+1, f.Kind(), f.Description())
	}
	return app, nil
}

// refresh performs one feed sweep: fetch, enrich, build the rare list,
// then append challenge matches deduplicated by flight ID. Flights already
// present as rare are tagged with the challenge number instead of being
// duplicated.
func (a *App) refresh(ctx context.Context) error {
	start := time.Now()
	a.metrics.FeedSweeps.Inc()

	flights, err := a.feed.FetchLiveWithRetry(ctx)
	if err != nil {
		a.metrics.FeedSweepErrors.Inc()
		return err
	}
	a.metrics.FeedSweepSeconds.Observe(time.Since(start).Seconds())
	a.metrics.LiveFlights.Set(float64(len(flights)))

	enriched := feed.Enrich(flights, a.rarity)

	var snapshot []taggedFlight
	seen := make(map[string]int) // flight ID -> snapshot index
	for _, f := range enriched {
		if f.Rarity < a.config.MinRarity || !f.HasPosition() {
			continue
		}
		seen[f.FlightID] = len(snapshot)
		snapshot = append(snapshot, taggedFlight{Flight: f})
	}
	a.metrics.RareFlights.Set(float64(len(snapshot)))

	for i, f := range a.filters {
		matched := a.matcher.Match(f, enriched)
		a.metrics.ChallengeMatches.WithLabelValues(strconv.Itoa(i + 1)).Set(float64(len(matched)))
		for _, fl := range matched {
			if !fl.HasPosition() {
				continue
			}
			if idx, dup := seen[fl.FlightID]; dup {
				if snapshot[idx].Challenge == 0 {
					snapshot[idx].Challenge = i + 1
				}
				continue
			}
			seen[fl.FlightID] = len(snapshot)
			snapshot = append(snapshot, taggedFlight{Flight: fl, Challenge: i + 1})
		}
	}

	a.mu.Lock()
	a.snapshot = snapshot
	a.updatedAt = time.Now()
	a.mu.Unlock()

	log.Printf("Refresh: %d live, %d on map (%.1fs)",
		len(flights), len(snapshot), time.Since(start).Seconds())
	return nil
}

// Run starts the HTTP server and the refresh loop, blocking until the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.startHTTPServer()

	log.Println("Fetching initial snapshot...")
	if err := a.refresh(ctx); err != nil {
		log.Printf("Initial refresh failed: %v", err)
	}
	a.ready = true

	if a.config.EnableRefresh {
		go a.refreshLoop(ctx)
	}

	<-ctx.Done()
	log.Println("Shutting down...")
	return a.Shutdown()
}

func (a *App) refreshLoop(ctx context.Context) {
	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if err := a.refresh(ctx); err != nil {
			log.Printf("Refresh failed: %v", err)
		}
	}
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown() error {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}
	log.Println("Stopped")
	return nil
}

// ---------------------------------------------------------------------------
// HTTP Server
// ---------------------------------------------------------------------------

func (a *App) startHTTPServer() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/flights", a.handleFlights)
	mux.HandleFunc("/api/challenges", a.handleChallenges)
	mux.HandleFunc("/healthz", a.handleHealth)
	mux.Handle("/metrics", a.metrics.Handler())

	addr := fmt.Sprintf("%s:%d", a.config.HTTPAddr, a.config.HTTPPort)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on http://%s", addr)
		if err := a.server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
}

func (a *App) handleFlights(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	snapshot := a.snapshot
	updatedAt := a.updatedAt
	a.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"flights":    snapshot,
		"count":      len(snapshot),
		"updated_at": updatedAt.UTC().Format(time.RFC3339),
	})
}

func (a *App) handleChallenges(w http.ResponseWriter, r *http.Request) {
	infos := make([]challengeInfo, len(a.filters))
	for i, f := range a.filters {
		infos[i] = challengeInfo{
			Number:      i + 1,
			Text:        f.Text(),
			Kind:        f.Kind().String(),
			Description: f.Description(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"challenges": infos,
		"count":      len(infos),
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := "healthy"
	if !a.ready {
		status = "starting"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(a.startTime).String(),
	})
}

// ---------------------------------------------------------------------------
// One-shot mode
// ---------------------------------------------------------------------------

// runOnce fetches a single snapshot and prints it as a table, useful for
// checking challenges from the command line without running the server.
func runOnce(ctx context.Context, app *App) error {
	if err := app.refresh(ctx); err != nil {
		return err
	}

	app.mu.RLock()
	snapshot := app.snapshot
	app.mu.RUnlock()

	fmt.Printf("%-10s %-8s %-6s %-10s %8s %5s  %s\n",
		"CALLSIGN", "TYPE", "RARITY", "TIER", "ROUTE", "CH", "AIRCRAFT")
	for _, f := range snapshot {
		route := "-"
		if f.HasRoute() {
			route = f.Origin + "-" + f.Destination
		}
		ch := ""
		if f.Challenge > 0 {
			ch = strconv.Itoa(f.Challenge)
		}
		fmt.Printf("%-10s %-8s %6.2f %-10s %8s %5s  %s\n",
			f.Callsign, f.TypeCode, f.Rarity, f.Tier, route, ch, f.AircraftName)
	}
	fmt.Printf("\n%d flights\n", len(snapshot))
	return nil
}

// ---------------------------------------------------------------------------
// Entry Point
// ---------------------------------------------------------------------------

func main() {
	once := flag.Bool("once", false, "fetch one snapshot, print it and exit")
	flag.Parse()

	cfg := loadConfig()

	// Positional arguments override the CHALLENGES environment variable.
	if args := flag.Args(); len(args) > 0 {
		cfg.Challenges = args
	}

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxFiles,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}

	if *once {
		if err := runOnce(ctx, app); err != nil {
			log.Fatalf("Snapshot failed: %v", err)
		}
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Run failed: %v", err)
	}
}
