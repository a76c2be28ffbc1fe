package goquery

import (
	"strings"

	"github.com/rmehra/pricekart"
	"golang.org/x/net/html"
)

// shortNamelessLen is the cutoff below which a generic-tier candidate with
// no resolvable price is rejected: short nameless hits are almost always
// navigation chrome.
const shortNamelessLen = 10

// blockTags are the element types that delimit text lines in the generic
// heuristic.
var blockTags = map[string]bool{
	"div": true, "section": true, "article": true, "li": true, "ul": true,
	"ol": true, "p": true, "table": true, "tr": true, "td": true,
	"header": true, "footer": true, "nav": true, "aside": true,
	"main": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "br": true,
}

// skipTags never contribute text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// extractGeneric is the last-resort tier: scan block-level elements for
// text runs containing a currency amount, and treat the line immediately
// preceding the amount as the candidate product name.
func extractGeneric(htmlStr string, cfg SiteConfig, col *collector) {
	root, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return
	}
	walkGeneric(root, cfg, col)
}

// walkGeneric processes the innermost blocks that manage to pair a name
// line with a currency line. Once a subtree has paired, enclosing blocks
// are skipped so wider containers do not re-pair the same text.
func walkGeneric(n *html.Node, cfg SiteConfig, col *collector) bool {
	if n.Type == html.ElementNode && skipTags[n.Data] {
		return false
	}

	childHandled := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walkGeneric(c, cfg, col) {
			childHandled = true
		}
	}
	if childHandled {
		return true
	}

	if n.Type != html.ElementNode || !blockTags[n.Data] {
		return false
	}

	lines := textLines(n)
	if len(lines) < 2 || !hasCurrencyLine(lines) {
		return false
	}
	return emitCandidates(lines, cfg, col)
}

// textLines flattens a block element into text lines, starting a new line
// at every nested block boundary.
func textLines(n *html.Node) []string {
	var lines []string
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			lines = append(lines, text)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			current.WriteString(node.Data)
		case html.ElementNode:
			if skipTags[node.Data] {
				return
			}
			if blockTags[node.Data] {
				flush()
			}
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockTags[node.Data] {
				flush()
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	flush()

	return lines
}

func hasCurrencyLine(lines []string) bool {
	for _, line := range lines {
		if currencyRe.MatchString(line) {
			return true
		}
	}
	return false
}

// emitCandidates pairs each currency line with the non-currency line
// preceding it. Reports whether any pairing was made, regardless of
// whether the candidate survived validation.
func emitCandidates(lines []string, cfg SiteConfig, col *collector) bool {
	paired := false
	for i, line := range lines {
		if !currencyRe.MatchString(line) {
			continue
		}

		name := ""
		for j := i - 1; j >= 0; j-- {
			if prev := lines[j]; !currencyRe.MatchString(prev) {
				name = prev
				break
			}
		}
		if name == "" {
			continue
		}
		paired = true

		var amounts []amount
		for _, m := range currencyRe.FindAllString(line, -1) {
			if v, ok := pricekart.ParsePrice(m); ok {
				amounts = append(amounts, amount{value: v})
			}
		}
		price, mrp := resolveAmounts(amounts, cfg)

		// Short candidates with no price are navigation chrome.
		if price == nil && len(name) <= shortNamelessLen {
			continue
		}

		col.add(pricekart.Product{
			Name:    name,
			Price:   price,
			MRP:     mrp,
			Website: cfg.Site,
		})
	}
	return paired
}
