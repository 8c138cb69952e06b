package htmlquote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	tls2 "github.com/refraction-networking/utls"
	"golang.org/x/net/html"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxBodySize caps how much of the quote page is read.
const maxBodySize = 10 * 1024 * 1024

// Fetcher retrieves a quote page over plain HTTP with a Chrome TLS
// fingerprint and parses its static markup.
type Fetcher struct {
	proxy string
}

// NewFetcher creates a Fetcher. proxy may be empty.
func NewFetcher(proxy string) *Fetcher {
	return &Fetcher{proxy: proxy}
}

// Fetch downloads targetURL and extracts quote fields for symbol from the
// raw HTML. If the response is itself a consent interstitial there is no way
// to click through it here; the miss is logged and whatever the markup holds
// is returned.
func (f *Fetcher) Fetch(ctx context.Context, targetURL, symbol string) (Fields, error) {
	body, err := f.get(ctx, targetURL)
	if err != nil {
		return Fields{}, err
	}

	if title := Title(body); strings.Contains(strings.ToLower(title), "consent") {
		slog.Warn("static fetch landed on a consent page", "title", title)
	}

	return ParseQuote(string(body), symbol)
}

// get retrieves the URL via plain HTTP with a Chrome TLS fingerprint.
func (f *Fetcher) get(ctx context.Context, targetURL string) ([]byte, error) {
	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	if f.proxy != "" {
		proxyURL, err := url.Parse(f.proxy)
		if err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("htmlquote: build request: %w", err)
	}
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("htmlquote: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("htmlquote: HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("htmlquote: read body: %w", err)
	}
	return body, nil
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via utls.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// Title extracts the <title> content from raw HTML bytes.
func Title(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
