package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.False(t, cfg.Browser.Headless)
	require.True(t, cfg.Browser.Stealth)
	require.Equal(t, 30*time.Second, cfg.Scraper.NavTimeout)
	require.Equal(t, 10*time.Second, cfg.Scraper.RenderTimeout)
	require.Equal(t, 250*time.Millisecond, cfg.Scraper.PollInterval)
	require.True(t, cfg.Scraper.HTTPFallback)
	require.Equal(t, "stock_results", cfg.Output.ResultsDir)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUOTESNAP_HEADLESS", "true")
	t.Setenv("QUOTESNAP_RENDER_TIMEOUT", "3s")
	t.Setenv("QUOTESNAP_HTTP_FALLBACK", "false")
	t.Setenv("QUOTESNAP_RESULTS_DIR", "out")
	t.Setenv("QUOTESNAP_LOG_FORMAT", "json")

	cfg := Load()

	require.True(t, cfg.Browser.Headless)
	require.Equal(t, 3*time.Second, cfg.Scraper.RenderTimeout)
	require.False(t, cfg.Scraper.HTTPFallback)
	require.Equal(t, "out", cfg.Output.ResultsDir)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("QUOTESNAP_HEADLESS", "definitely")
	t.Setenv("QUOTESNAP_NAV_TIMEOUT", "soon")

	cfg := Load()

	require.False(t, cfg.Browser.Headless)
	require.Equal(t, 30*time.Second, cfg.Scraper.NavTimeout)
}
