package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser Browser
	Scraper Scraper
	Output  Output
	Log     Log
}

// Browser controls the Rod browser instance.
type Browser struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: false

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string

	// Proxy is the proxy URL used for both the browser and the
	// static HTTP fallback.
	Proxy string

	// Stealth toggles stealth JS injection before navigation.
	Stealth bool // default: true
}

// Scraper controls scraping behavior.
type Scraper struct {
	// NavTimeout is the deadline for a single page navigation.
	NavTimeout time.Duration // default: 30s

	// RenderTimeout bounds the polled wait for client-side rendering,
	// both after navigation and after a consent click.
	RenderTimeout time.Duration // default: 10s

	// PollInterval is how often the readiness predicate is evaluated.
	PollInterval time.Duration // default: 250ms

	// HTTPFallback enables the static-HTML fallback when the rendered
	// page yields no price.
	HTTPFallback bool // default: true

	// HTTPTimeout is the deadline for the static fallback fetch.
	HTTPTimeout time.Duration // default: 15s
}

// Output controls result persistence.
type Output struct {
	// ResultsDir is where snapshot JSON files and screenshots land.
	ResultsDir string // default: "stock_results"
}

// Log controls structured logging.
type Log struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: Browser{
			Headless:  envBoolOr("QUOTESNAP_HEADLESS", false),
			NoSandbox: envBoolOr("QUOTESNAP_NO_SANDBOX", false),
			Bin:       os.Getenv("QUOTESNAP_BROWSER_BIN"),
			Proxy:     os.Getenv("QUOTESNAP_PROXY"),
			Stealth:   envBoolOr("QUOTESNAP_STEALTH", true),
		},
		Scraper: Scraper{
			NavTimeout:    envDurationOr("QUOTESNAP_NAV_TIMEOUT", 30*time.Second),
			RenderTimeout: envDurationOr("QUOTESNAP_RENDER_TIMEOUT", 10*time.Second),
			PollInterval:  envDurationOr("QUOTESNAP_POLL_INTERVAL", 250*time.Millisecond),
			HTTPFallback:  envBoolOr("QUOTESNAP_HTTP_FALLBACK", true),
			HTTPTimeout:   envDurationOr("QUOTESNAP_HTTP_TIMEOUT", 15*time.Second),
		},
		Output: Output{
			ResultsDir: envOr("QUOTESNAP_RESULTS_DIR", "stock_results"),
		},
		Log: Log{
			Level:  envOr("QUOTESNAP_LOG_LEVEL", "info"),
			Format: envOr("QUOTESNAP_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
