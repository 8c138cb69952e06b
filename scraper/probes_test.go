package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrimaryProbes_SymbolTemplated(t *testing.T) {
	probes := primaryProbes("TSLA")
	require.Len(t, probes, 3)
	require.Equal(t, fieldPrice, probes[0].field)

	js := probes[0].js()
	require.Contains(t, js, "data-symbol='TSLA'")
	require.NotContains(t, js, "AAPL")
}

func TestProbeJS_SelectorOrder(t *testing.T) {
	probe := primaryProbes("AAPL")[0]
	js := probe.js()

	last := -1
	for _, sel := range probe.selectors {
		idx := strings.Index(js, sel)
		require.NotEqual(t, -1, idx, "selector %q missing from script", sel)
		require.Greater(t, idx, last, "selector %q out of order", sel)
		last = idx
	}
	require.Contains(t, js, `return "N/A"`)
}

func TestProbeJS_DollarScanOnlyOnPrice(t *testing.T) {
	probes := primaryProbes("AAPL")
	require.Contains(t, probes[0].js(), "new RegExp")
	require.NotContains(t, probes[1].js(), "new RegExp")
	require.NotContains(t, probes[2].js(), "new RegExp")
	for _, p := range secondaryProbes() {
		require.NotContains(t, p.js(), "new RegExp")
	}
}

func TestConsentClickJS_ButtonTexts(t *testing.T) {
	for _, want := range []string{"Accept", "Agree", "Consent"} {
		require.Contains(t, consentClickJS, want)
	}
}
