package htmlquote_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/use-agent/quotesnap/htmlquote"
	"github.com/use-agent/quotesnap/models"
)

const quotePage = `<html>
<head><title>Apple Inc. (AAPL) Stock Price - Yahoo Finance</title></head>
<body>
<div data-test="quote-header-info">
  <fin-streamer data-field="regularMarketPrice">150.25</fin-streamer>
  <fin-streamer data-field="regularMarketChange">+1.25</fin-streamer>
  <fin-streamer data-field="regularMarketChangePercent">+0.84%</fin-streamer>
</div>
<table>
  <tr><td>Previous Close</td><td data-test="PREV_CLOSE-value">149.00</td></tr>
  <tr><td>Open</td><td data-test="OPEN-value">150.00</td></tr>
  <tr><td>Volume</td><td data-test="TD_VOLUME-value">50,123,400</td></tr>
</table>
</body>
</html>`

func TestParseQuote_HeaderAndSummaryTable(t *testing.T) {
	fields, err := htmlquote.ParseQuote(quotePage, "AAPL")
	require.NoError(t, err)

	require.Equal(t, "150.25", fields.Price)
	require.Equal(t, "+1.25", fields.Change)
	require.Equal(t, "+0.84%", fields.PercentChange)
	require.Equal(t, "149.00", fields.PreviousClose)
	require.Equal(t, "150.00", fields.Open)
	require.Equal(t, "50,123,400", fields.Volume)
}

func TestParseQuote_SymbolScopedStreamer(t *testing.T) {
	page := `<html><body>
<fin-streamer data-symbol="MSFT" data-field="regularMarketPrice">410.10</fin-streamer>
</body></html>`

	fields, err := htmlquote.ParseQuote(page, "MSFT")
	require.NoError(t, err)
	require.Equal(t, "410.10", fields.Price)

	// Another symbol's streamer must not satisfy the probe; the dollar scan
	// finds nothing since "410.10" has no currency symbol.
	fields, err = htmlquote.ParseQuote(page, "AAPL")
	require.NoError(t, err)
	require.Equal(t, models.Sentinel, fields.Price)
}

func TestParseQuote_DollarScanFallback(t *testing.T) {
	page := `<html><body><div><span>$99.10</span></div></body></html>`

	fields, err := htmlquote.ParseQuote(page, "AAPL")
	require.NoError(t, err)
	require.Equal(t, "$99.10", fields.Price)
	require.Equal(t, models.Sentinel, fields.Change)
}

func TestParseQuote_EmptyPage(t *testing.T) {
	fields, err := htmlquote.ParseQuote("<html><body></body></html>", "AAPL")
	require.NoError(t, err)

	for _, v := range []string{
		fields.Price, fields.Change, fields.PercentChange,
		fields.PreviousClose, fields.Open, fields.Volume,
	} {
		require.Equal(t, models.Sentinel, v)
	}
}

func TestDollarAmountRE(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"$123.45", true},
		{"$0.99", true},
		{"123.45", false},
		{"$123", false},
		{"$123.45 today", false},
		{"price: $123.45", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, htmlquote.DollarAmountRE.MatchString(tt.text), "text %q", tt.text)
	}
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Apple Inc. (AAPL) Stock Price - Yahoo Finance", htmlquote.Title([]byte(quotePage)))
	require.Equal(t, "", htmlquote.Title([]byte("<html><body>no title</body></html>")))
}
