package browser

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/quotesnap/config"
	"github.com/use-agent/quotesnap/models"
	"github.com/ysmood/gson"
)

// Session owns a single browser and a single page, exclusively. The browser
// is launched lazily on first use; Close tears it down and resets state so a
// later call would launch a fresh one. Not safe for concurrent use: the
// workflow is strictly sequential by design.
type Session struct {
	cfg     config.Browser
	browser *rod.Browser
	page    *rod.Page
}

// NewSession creates a session without launching anything.
func NewSession(cfg config.Browser) *Session {
	return &Session{cfg: cfg}
}

// ensureStarted launches the browser and creates the page on first call.
// Subsequent calls are no-ops. A launch failure is fatal for the run and
// propagates to the caller.
func (s *Session) ensureStarted() error {
	if s.page != nil {
		return nil
	}

	l := launcher.New().
		Headless(s.cfg.Headless).
		NoSandbox(s.cfg.NoSandbox)

	if s.cfg.Bin != "" {
		l = l.Bin(s.cfg.Bin)
	}
	if s.cfg.Proxy != "" {
		l = l.Proxy(s.cfg.Proxy)
	}

	// ── Stealth flags ────────────────────────────────────────────────
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		return models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}

	// Stealth JS only takes effect for navigations after it is installed.
	if s.cfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth",
				"error", evalErr,
			)
		}
	}

	s.browser = b
	s.page = page
	return nil
}

// Navigate loads the given URL in the session's page. A Google-search
// Referer is attached so the visit looks like an organic arrival.
func (s *Session) Navigate(ctx context.Context, target string) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	p := s.page.Context(ctx)

	if u, parseErr := url.Parse(target); parseErr == nil {
		_ = proto.NetworkSetExtraHTTPHeaders{
			Headers: proto.NetworkHeaders{
				"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
			},
		}.Call(p)
	}

	return p.Navigate(target)
}

// EvalText evaluates a JS function in the page and returns its string result.
func (s *Session) EvalText(ctx context.Context, js string) (string, error) {
	if err := s.ensureStarted(); err != nil {
		return "", err
	}
	res, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

// Title returns the current document title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return s.EvalText(ctx, `() => document.title`)
}

// Screenshot captures the current viewport as a PNG at the given path.
func (s *Session) Screenshot(ctx context.Context, path string) error {
	if err := s.ensureStarted(); err != nil {
		return err
	}
	bin, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, bin, 0o644)
}

// Close kills the browser process if one was launched and resets the session
// so a subsequent call would launch a fresh browser. Safe to call when the
// session was never started, and on every exit path.
func (s *Session) Close() error {
	if s.browser == nil {
		return nil
	}
	slog.Info("closing browser session")
	err := s.browser.Close()
	s.browser = nil
	s.page = nil
	return err
}
