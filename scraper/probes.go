package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/use-agent/quotesnap/htmlquote"
	"github.com/use-agent/quotesnap/models"
)

// Snapshot field names, matching the persisted JSON keys.
const (
	fieldPrice         = "price"
	fieldChange        = "change"
	fieldPercentChange = "percent_change"
	fieldPreviousClose = "previous_close"
	fieldOpen          = "open"
	fieldVolume        = "volume"
)

// fieldProbe describes how one quote field is pulled out of the page: an
// ordered list of selector candidates, the first match wins.
type fieldProbe struct {
	field     string
	selectors []string

	// dollarScan adds a last-resort pass over every element looking for
	// text shaped like a bare dollar amount.
	dollarScan bool
}

// primaryProbes returns the probes whose failure aborts the whole run:
// price, change and percent change. Selector lists are hard-coded; if the
// quote page's markup drifts, the probes degrade to the sentinel.
func primaryProbes(symbol string) []fieldProbe {
	return []fieldProbe{
		{
			field: fieldPrice,
			selectors: []string{
				`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketPrice']`,
				fmt.Sprintf(`fin-streamer[data-symbol='%s'][data-field='regularMarketPrice']`, symbol),
				`.quote-header-section span[data-reactid='32']`,
			},
			dollarScan: true,
		},
		{
			field: fieldChange,
			selectors: []string{
				`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketChange']`,
				`.quote-header-section span[data-reactid='33']`,
			},
		},
		{
			field: fieldPercentChange,
			selectors: []string{
				`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketChangePercent']`,
				`.quote-header-section span[data-reactid='34']`,
			},
		},
	}
}

// secondaryProbes returns the probes that degrade individually: previous
// close, open and volume from the summary table.
func secondaryProbes() []fieldProbe {
	return []fieldProbe{
		{field: fieldPreviousClose, selectors: []string{`td[data-test='PREV_CLOSE-value']`}},
		{field: fieldOpen, selectors: []string{`td[data-test='OPEN-value']`}},
		{field: fieldVolume, selectors: []string{`td[data-test='TD_VOLUME-value']`}},
	}
}

// js compiles the probe into a page function returning the first match's
// text, or the sentinel. The selector list is JSON-embedded so symbol text
// can never escape the script.
func (p fieldProbe) js() string {
	sels, _ := json.Marshal(p.selectors)

	var b strings.Builder
	b.WriteString("() => {\n")
	fmt.Fprintf(&b, "    const selectors = %s;\n", sels)
	b.WriteString(`    for (const sel of selectors) {
        const els = document.querySelectorAll(sel);
        if (els.length > 0) {
            return els[0].textContent.trim();
        }
    }
`)
	if p.dollarScan {
		fmt.Fprintf(&b, `    const re = new RegExp(%q);
    for (const el of document.querySelectorAll("*")) {
        if (re.test(el.textContent.trim())) {
            return el.textContent.trim();
        }
    }
`, htmlquote.DollarAmountPattern)
	}
	fmt.Fprintf(&b, "    return %q;\n}", models.Sentinel)
	return b.String()
}

// readyStateJS reports the document load state, polled by waitReady.
const readyStateJS = `() => document.readyState`

// consentClickJS clicks the first button whose visible text looks like a
// cookie-wall accept button. Returns "clicked" so the caller can log the
// outcome; the click itself is best-effort either way.
const consentClickJS = `() => {
    const buttons = document.querySelectorAll("button");
    for (const b of buttons) {
        const text = b.textContent;
        if (text.includes("Accept") || text.includes("Agree") || text.includes("Consent")) {
            b.click();
            return "clicked";
        }
    }
    return "";
}`
