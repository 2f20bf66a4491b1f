package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Nav     NavConfig
	Log     LogConfig
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// WindowWidth/WindowHeight size the browser window. The SRPO hides
	// parts of its navigation chrome on narrow viewports, so the window
	// must be desktop-sized.
	WindowWidth  int // default: 1920
	WindowHeight int // default: 1080
}

// NavConfig controls navigation timing. The settle delays are empirically
// chosen: the SRPO gives no DOM signal for chart rendering or modal
// animation completion, so each one is a tunable fixed sleep rather than a
// condition wait.
type NavConfig struct {
	// BaseURL is the SRPO application origin.
	BaseURL string // default: "https://cnd.onlinesrp.org"

	// WaitTimeout bounds every element wait.
	WaitTimeout time.Duration // default: 10s

	// PollInterval is the wait primitive's re-scan interval.
	PollInterval time.Duration // default: 250ms

	// TreeSpanThreshold is the minimum number of rendered span elements
	// taken to mean the area tree has finished expanding. The tree renders
	// incrementally, so this is a heuristic count, not an exact one.
	TreeSpanThreshold int // default: 100

	// AreaSettleDelay is slept after clicking an area so the home page can
	// finish generating its SVG charts.
	AreaSettleDelay time.Duration // default: 1s

	// ListingSettleDelay is slept after selecting an activity filter.
	ListingSettleDelay time.Duration // default: 1500ms

	// RecordSettleDelay is slept after opening a record's modal overlay.
	RecordSettleDelay time.Duration // default: 1s

	// PageSettleDelay is slept after advancing to the next listing page.
	PageSettleDelay time.Duration // default: 1s

	// ExportSettleDelay is slept between selecting an export listing and
	// triggering the export itself.
	ExportSettleDelay time.Duration // default: 500ms

	// DownloadTimeout bounds the wait for an exported file to land in the
	// download directory.
	DownloadTimeout time.Duration // default: 60s

	// RecordsPerSecond paces record opens so the listing server is not
	// hammered. Zero disables pacing.
	RecordsPerSecond float64 // default: 1.0
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:     envBoolOr("SRPO_HEADLESS", true),
			NoSandbox:    envBoolOr("SRPO_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("SRPO_BROWSER_BIN"),
			WindowWidth:  envIntOr("SRPO_WINDOW_WIDTH", 1920),
			WindowHeight: envIntOr("SRPO_WINDOW_HEIGHT", 1080),
		},
		Nav: NavConfig{
			BaseURL:            envOr("SRPO_BASE_URL", "https://cnd.onlinesrp.org"),
			WaitTimeout:        envDurationOr("SRPO_WAIT_TIMEOUT", 10*time.Second),
			PollInterval:       envDurationOr("SRPO_POLL_INTERVAL", 250*time.Millisecond),
			TreeSpanThreshold:  envIntOr("SRPO_TREE_SPAN_THRESHOLD", 100),
			AreaSettleDelay:    envDurationOr("SRPO_AREA_SETTLE", time.Second),
			ListingSettleDelay: envDurationOr("SRPO_LISTING_SETTLE", 1500*time.Millisecond),
			RecordSettleDelay:  envDurationOr("SRPO_RECORD_SETTLE", time.Second),
			PageSettleDelay:    envDurationOr("SRPO_PAGE_SETTLE", time.Second),
			ExportSettleDelay:  envDurationOr("SRPO_EXPORT_SETTLE", 500*time.Millisecond),
			DownloadTimeout:    envDurationOr("SRPO_DOWNLOAD_TIMEOUT", 60*time.Second),
			RecordsPerSecond:   envFloatOr("SRPO_RECORDS_PER_SECOND", 1.0),
		},
		Log: LogConfig{
			Level:  envOr("SRPO_LOG_LEVEL", "info"),
			Format: envOr("SRPO_LOG_FORMAT", "text"),
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

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
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

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
