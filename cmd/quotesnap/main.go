package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/use-agent/quotesnap/browser"
	"github.com/use-agent/quotesnap/config"
	"github.com/use-agent/quotesnap/htmlquote"
	"github.com/use-agent/quotesnap/models"
	"github.com/use-agent/quotesnap/results"
	"github.com/use-agent/quotesnap/scraper"
)

func main() {
	symbol := flag.String("symbol", "AAPL", "stock symbol to scrape")
	headless := flag.Bool("headless", false, "run the browser in headless mode")
	flag.Parse()

	// ── 1. Load configuration (flags override env) ──────────────────
	cfg := config.Load()
	cfg.Browser.Headless = *headless

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("quotesnap starting",
		"symbol", *symbol,
		"headless", cfg.Browser.Headless,
		"resultsDir", cfg.Output.ResultsDir,
	)

	// ── 3. Signal-aware context: the only cancellation path ────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 4. Construct the session; close on every exit path ─────────
	session := browser.NewSession(cfg.Browser)
	defer func() {
		if err := session.Close(); err != nil {
			slog.Warn("browser close failed", "error", err)
		}
	}()

	writer, err := results.NewWriter(cfg.Output.ResultsDir)
	if err != nil {
		slog.Error("failed to prepare results directory", "error", err)
		return
	}

	sc := scraper.New(session, cfg.Scraper, writer)
	if cfg.Scraper.HTTPFallback {
		sc.SetStaticFallback(htmlquote.NewFetcher(cfg.Browser.Proxy))
	}

	// ── 5. Run the one workflow ─────────────────────────────────────
	snap, err := sc.Fetch(ctx, *symbol)
	if err != nil {
		slog.Error("scrape failed", "symbol", *symbol, "error", err)
	}
	printSnapshot(snap)

	// Exit status stays 0 on every path; callers inspect the JSON
	// output or its absence.
}

// printSnapshot writes the human-readable summary to stdout.
func printSnapshot(snap *models.Snapshot) {
	if snap == nil {
		fmt.Println("No data available")
		return
	}

	fmt.Println("\n=== Stock Data ===")
	fmt.Printf("Symbol: %s\n", snap.Symbol)
	fmt.Printf("Price: %s\n", snap.Price)
	fmt.Printf("Change: %s\n", snap.Change)
	fmt.Printf("Percent Change: %s\n", snap.PercentChange)
	fmt.Printf("Previous Close: %s\n", snap.PreviousClose)
	fmt.Printf("Open: %s\n", snap.Open)
	fmt.Printf("Volume: %s\n", snap.Volume)
	fmt.Printf("Source: %s\n", snap.Source)
	fmt.Printf("Timestamp: %s\n", snap.Timestamp)
}

// initLogger configures slog based on the Log config.
func initLogger(cfg config.Log) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
