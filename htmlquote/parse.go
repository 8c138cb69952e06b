// Package htmlquote extracts quote figures from the static HTML of a quote
// page. It serves as the fallback tier when the rendered page yields no
// price: some markets are present in the server-rendered markup even when
// client-side rendering was too slow or blocked.
package htmlquote

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/quotesnap/models"
	"golang.org/x/net/html"
)

// DollarAmountPattern matches a bare dollar price like "$150.25". The same
// pattern backs the in-page last-resort scan and the static one here.
const DollarAmountPattern = `^\$\d+\.\d+$`

// DollarAmountRE is DollarAmountPattern compiled.
var DollarAmountRE = regexp.MustCompile(DollarAmountPattern)

// Fields holds the quote figures extractable from static HTML, with the
// sentinel for anything the markup does not carry.
type Fields struct {
	Price         string
	Change        string
	PercentChange string
	PreviousClose string
	Open          string
	Volume        string
}

// ParseQuote pulls quote fields out of raw HTML. Selector chains mirror the
// in-page probes; the price additionally falls back to a scan for
// dollar-amount shaped text.
func ParseQuote(rawHTML, symbol string) (Fields, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return Fields{}, err
	}

	f := Fields{
		Price: firstMatchText(doc,
			`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketPrice']`,
			`fin-streamer[data-symbol='`+symbol+`'][data-field='regularMarketPrice']`,
		),
		Change: firstMatchText(doc,
			`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketChange']`,
			`fin-streamer[data-symbol='`+symbol+`'][data-field='regularMarketChange']`,
		),
		PercentChange: firstMatchText(doc,
			`[data-test='quote-header-info'] fin-streamer[data-field='regularMarketChangePercent']`,
			`fin-streamer[data-symbol='`+symbol+`'][data-field='regularMarketChangePercent']`,
		),
		PreviousClose: firstMatchText(doc, `td[data-test='PREV_CLOSE-value']`),
		Open:          firstMatchText(doc, `td[data-test='OPEN-value']`),
		Volume:        firstMatchText(doc, `td[data-test='TD_VOLUME-value']`),
	}

	if f.Price == models.Sentinel {
		f.Price = scanDollarAmount(doc)
	}
	return f, nil
}

// firstMatchText returns the trimmed text of the first element matched by
// the ordered selector list, or the sentinel when nothing matches.
func firstMatchText(doc *html.Node, selectors ...string) string {
	for _, selector := range selectors {
		sel, err := cascadia.Parse(selector)
		if err != nil {
			continue
		}
		node := cascadia.Query(doc, sel)
		if node == nil {
			continue
		}
		if text := strings.TrimSpace(nodeText(node)); text != "" {
			return text
		}
	}
	return models.Sentinel
}

// scanDollarAmount walks every element and returns the first whose text is a
// bare dollar amount.
func scanDollarAmount(doc *html.Node) string {
	found := models.Sentinel
	goquery.NewDocumentFromNode(doc).Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); DollarAmountRE.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
