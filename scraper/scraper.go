// Package scraper drives one quote-page extraction end to end: navigate,
// wait for rendering, dismiss a consent wall if one appears, probe the page
// for each quote field, capture a screenshot and persist the snapshot.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/use-agent/quotesnap/config"
	"github.com/use-agent/quotesnap/htmlquote"
	"github.com/use-agent/quotesnap/models"
	"github.com/use-agent/quotesnap/results"
)

// quoteURLBase is the quote page for a single symbol.
const quoteURLBase = "https://finance.yahoo.com/quote/"

// Backend is the browser capability surface the scraper consumes. Any
// automation backend satisfying these four operations can be substituted;
// shutdown belongs to whoever owns the backend.
type Backend interface {
	Navigate(ctx context.Context, url string) error
	EvalText(ctx context.Context, js string) (string, error)
	Title(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, path string) error
}

// StaticFetcher is the optional plain-HTTP fallback tier.
type StaticFetcher interface {
	Fetch(ctx context.Context, url, symbol string) (htmlquote.Fields, error)
}

// Scraper runs the single sequential workflow. One workflow in flight per
// backend; nothing here is safe for concurrent use.
type Scraper struct {
	backend Backend
	cfg     config.Scraper
	writer  *results.Writer
	static  StaticFetcher
}

// New creates a Scraper over the given backend and results writer.
func New(backend Backend, cfg config.Scraper, writer *results.Writer) *Scraper {
	return &Scraper{backend: backend, cfg: cfg, writer: writer}
}

// SetStaticFallback wires in the static-HTML fallback tier. When set, it is
// consulted whenever the rendered page yields no price.
func (s *Scraper) SetStaticFallback(f StaticFetcher) {
	s.static = f
}

// QuoteURL builds the quote page URL for a symbol.
func QuoteURL(symbol string) string {
	return quoteURLBase + url.PathEscape(symbol)
}

// Fetch scrapes the quote page for symbol and persists the snapshot plus a
// screenshot. It returns the snapshot (possibly sentinel-filled), or an
// error when navigation, a primary probe, the screenshot or persistence
// failed, in which case nothing is written.
func (s *Scraper) Fetch(ctx context.Context, symbol string) (*models.Snapshot, error) {
	target := QuoteURL(symbol)
	slog.Info("scraping quote page", "symbol", symbol, "url", target)

	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavTimeout)
	navErr := s.backend.Navigate(navCtx, target)
	cancel()
	if navErr != nil {
		return nil, categorize(navErr, models.ErrCodeNavigation, "navigation to quote page failed")
	}

	s.waitReady(ctx)

	s.handleConsent(ctx)

	snap := models.NewSnapshot(symbol)

	// Primary fields: a probe error here loses the whole run, no partial save.
	for _, probe := range primaryProbes(symbol) {
		res := s.probe(ctx, probe)
		if res.Err != nil {
			return nil, categorize(res.Err, models.ErrCodeExtraction, "extraction of "+res.Field+" failed")
		}
		apply(snap, res)
	}

	// Secondary fields degrade to the sentinel individually.
	for _, probe := range secondaryProbes() {
		res := s.probe(ctx, probe)
		if res.Err != nil {
			slog.Warn("could not extract field", "field", res.Field, "error", res.Err)
		}
		apply(snap, res)
	}

	if snap.Price == models.Sentinel && s.static != nil {
		s.fillFromStatic(ctx, snap, target)
	}

	shotPath := s.writer.ScreenshotPath(symbol)
	if err := s.backend.Screenshot(ctx, shotPath); err != nil {
		return nil, categorize(err, models.ErrCodeExtraction, "screenshot capture failed")
	}
	slog.Info("screenshot saved", "path", shotPath)

	jsonPath, err := s.writer.SaveSnapshot(snap)
	if err != nil {
		// All-or-nothing at the persistence boundary: drop the screenshot too.
		_ = os.Remove(shotPath)
		return nil, models.NewScrapeError(models.ErrCodePersistence, "failed to save snapshot", err)
	}
	slog.Info("result saved", "path", jsonPath)

	return snap, nil
}

// waitReady polls the document load state until it settles or the deadline
// passes. A deadline miss is not fatal: the run proceeds with whatever the
// DOM holds, and the probes degrade to the sentinel if rendering was slow.
func (s *Scraper) waitReady(ctx context.Context) {
	err := pollUntil(ctx, s.cfg.PollInterval, s.cfg.RenderTimeout, func(ctx context.Context) (bool, error) {
		state, err := s.backend.EvalText(ctx, readyStateJS)
		if err != nil {
			return false, err
		}
		return state == "complete", nil
	})
	if err != nil {
		slog.Debug("page did not settle before deadline, proceeding", "error", err)
	}
}

// handleConsent checks the page title for a consent interstitial and tries
// to click through it. Best-effort: every failure is logged and swallowed.
func (s *Scraper) handleConsent(ctx context.Context) {
	title, err := s.backend.Title(ctx)
	if err != nil {
		slog.Warn("could not read page title", "error", err)
		return
	}
	slog.Info("page loaded", "title", title)

	if !strings.Contains(strings.ToLower(title), "consent") {
		return
	}

	slog.Info("consent page detected, trying to accept")
	outcome, clickErr := s.backend.EvalText(ctx, consentClickJS)
	if clickErr != nil {
		slog.Warn("consent click failed", "error", clickErr)
		return
	}
	if outcome != "clicked" {
		slog.Warn("no consent button found on page")
	}
	s.waitReady(ctx)
}

func (s *Scraper) probe(ctx context.Context, p fieldProbe) FieldResult {
	value, err := s.backend.EvalText(ctx, p.js())
	return FieldResult{Field: p.field, Value: value, Err: err}
}

// fillFromStatic fetches the quote page over plain HTTP and fills any field
// still at the sentinel. Best-effort: failures are logged and swallowed.
func (s *Scraper) fillFromStatic(ctx context.Context, snap *models.Snapshot, target string) {
	slog.Info("rendered page yielded no price, trying static fallback")

	ctx, cancel := context.WithTimeout(ctx, s.cfg.HTTPTimeout)
	defer cancel()

	fields, err := s.static.Fetch(ctx, target, snap.Symbol)
	if err != nil {
		slog.Warn("static fallback failed", "error", err)
		return
	}

	fill(&snap.Price, fields.Price)
	fill(&snap.Change, fields.Change)
	fill(&snap.PercentChange, fields.PercentChange)
	fill(&snap.PreviousClose, fields.PreviousClose)
	fill(&snap.Open, fields.Open)
	fill(&snap.Volume, fields.Volume)
}

func fill(dst *string, v string) {
	if *dst == models.Sentinel && v != "" && v != models.Sentinel {
		*dst = v
	}
}

// apply copies one field result onto the snapshot.
func apply(snap *models.Snapshot, res FieldResult) {
	switch res.Field {
	case fieldPrice:
		snap.Price = res.Text()
	case fieldChange:
		snap.Change = res.Text()
	case fieldPercentChange:
		snap.PercentChange = res.Text()
	case fieldPreviousClose:
		snap.PreviousClose = res.Text()
	case fieldOpen:
		snap.Open = res.Text()
	case fieldVolume:
		snap.Volume = res.Text()
	}
}

// categorize wraps raw errors into typed ScrapeErrors, preserving an
// existing ScrapeError (such as a browser launch failure) unchanged.
func categorize(err error, code, msg string) *models.ScrapeError {
	var se *models.ScrapeError
	switch {
	case errors.As(err, &se):
		return se
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "run canceled", err)
	default:
		return models.NewScrapeError(code, msg, err)
	}
}
