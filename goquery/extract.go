package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/rmehra/pricekart"
)

// currencyRe matches an amount that is explicitly marked as money.
// Bare numbers only count as amounts inside elements matched by a config's
// PriceSelectors.
var currencyRe = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// amount is a monetary value found in a container, with its strikethrough
// signal. Struck amounts are MRPs.
type amount struct {
	value  float64
	struck bool
}

// ExtractWithConfig runs the shared three-tier extraction over one HTML
// document. Tiers are tried in order of precision; the first tier that
// yields at least one validated product wins. A document with no
// recognizable products returns an empty result, not an error.
func ExtractWithConfig(html string, sourceLabel string, cfg SiteConfig) (*pricekart.SiteResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, pricekart.Errorf(pricekart.EINVALID, "empty HTML document")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pricekart.Errorf(pricekart.EINVALID, "failed to parse HTML: %v", err)
	}

	col := newCollector(cfg)

	// Tier 1: structured-data blob.
	if len(cfg.StateMarkers) > 0 {
		if state, ok := FindStateJSON(doc, cfg.StateMarkers); ok {
			for _, c := range WalkState(state, cfg.maxDepth(), cfg.keyHints()) {
				col.add(pricekart.Product{
					Name:    c.Name,
					Price:   c.Price,
					MRP:     c.MRP,
					Website: cfg.Site,
				})
			}
		}
	}

	// Tier 2: site-specific structural selectors.
	if col.empty() {
		extractFromSelectors(doc, cfg, col)
	}

	// Tier 3: generic text heuristic, last resort.
	if col.empty() {
		extractGeneric(html, cfg, col)
	}

	return &pricekart.SiteResult{
		Website:     cfg.Site,
		Location:    extractLocation(doc, cfg),
		Products:    col.products(),
		Filename:    sourceLabel,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(html)),
	}, nil
}

// ExtractLocationWithConfig runs only the delivery-location scan over a
// document. Returns an empty string for unparseable input; location absence
// is never an error.
func ExtractLocationWithConfig(html string, cfg SiteConfig) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return extractLocation(doc, cfg)
}

// extractFromSelectors implements the selector tier: for every candidate
// name element, climb to the nearest ancestor that also carries an amount,
// and read price/MRP from that container.
func extractFromSelectors(doc *goquery.Document, cfg SiteConfig, col *collector) {
	addCandidate := func(sel *goquery.Selection, name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		container := pricedAncestor(sel, cfg)
		var price, mrp *float64
		if container != nil {
			price, mrp = resolveAmounts(collectAmounts(container, name, cfg), cfg)
		}
		col.add(pricekart.Product{Name: name, Price: price, MRP: mrp, Website: cfg.Site})
	}

	for _, selector := range cfg.TitleSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			addCandidate(sel, sel.Text())
		})
	}

	if cfg.AnchorHref != nil {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !cfg.AnchorHref.MatchString(href) {
				return
			}
			name, ok := sel.Attr("title")
			if !ok || strings.TrimSpace(name) == "" {
				// Anchor text includes nested price spans; strip
				// the amounts so they don't end up in the name.
				name = currencyRe.ReplaceAllString(sel.Text(), "")
			}
			addCandidate(sel, name)
		})
	}

	if cfg.UseImageAlt {
		doc.Find("img[alt]").Each(func(_ int, sel *goquery.Selection) {
			alt, _ := sel.Attr("alt")
			addCandidate(sel, alt)
		})
	}
}

// pricedAncestor climbs from a name element to the nearest ancestor that
// contains an amount, either currency-marked text or an element matched by
// the config's PriceSelectors. Returns nil when no priced ancestor exists
// within the hop budget.
func pricedAncestor(sel *goquery.Selection, cfg SiteConfig) *goquery.Selection {
	node := sel.Parent()
	for hops := 0; hops < maxAncestorHops && node.Length() > 0; hops++ {
		if currencyRe.MatchString(node.Text()) {
			return node
		}
		for _, ps := range cfg.PriceSelectors {
			if node.Find(ps).Length() > 0 {
				return node
			}
		}
		node = node.Parent()
	}
	return nil
}

// collectAmounts gathers the amounts in a container in document order.
// nameText is excluded so quantities inside the product name ("Potato 1kg")
// are not mistaken for prices.
func collectAmounts(container *goquery.Selection, nameText string, cfg SiteConfig) []amount {
	var amounts []amount
	seen := make(map[float64]bool)
	struckVals := struckValues(container, cfg)

	add := func(v float64, struck bool) {
		if seen[v] {
			return
		}
		seen[v] = true
		amounts = append(amounts, amount{value: v, struck: struck || struckVals[v]})
	}

	// Elements matched by PriceSelectors carry amounts even without a
	// currency glyph. Composite containers holding several amounts are
	// skipped here; their leaves and the text scan below cover them.
	for _, ps := range cfg.PriceSelectors {
		container.Find(ps).Each(func(_ int, el *goquery.Selection) {
			text := strings.TrimSpace(el.Text())
			if text == "" || text == strings.TrimSpace(nameText) {
				return
			}
			if len(currencyRe.FindAllString(text, -1)) > 1 {
				return
			}
			if v, ok := pricekart.ParsePrice(text); ok {
				add(v, isStruck(el, container, cfg))
			}
		})
	}

	// Currency-marked amounts in the container's text.
	text := container.Text()
	if nameText != "" {
		text = strings.Replace(text, nameText, "", 1)
	}
	for _, m := range currencyRe.FindAllString(text, -1) {
		if v, ok := pricekart.ParsePrice(m); ok {
			add(v, false)
		}
	}

	return amounts
}

// resolveAmounts applies the price/MRP disambiguation rules to the amounts
// found in one container.
func resolveAmounts(amounts []amount, cfg SiteConfig) (price, mrp *float64) {
	switch {
	case len(amounts) == 0:
		return nil, nil
	case len(amounts) == 1:
		return pricekart.Amount(amounts[0].value), nil
	}

	// A strikethrough signal is authoritative: the struck value is the
	// MRP, the first unstruck value the selling price.
	for _, a := range amounts {
		if a.struck {
			mrp = pricekart.Amount(a.value)
			break
		}
	}
	if mrp != nil {
		for _, a := range amounts {
			if !a.struck {
				price = pricekart.Amount(a.value)
				break
			}
		}
		return price, mrp
	}

	// No signal: fall back to the markup-order convention.
	if cfg.PriceFirst {
		return pricekart.Amount(amounts[0].value), pricekart.Amount(amounts[1].value)
	}
	return pricekart.Amount(amounts[1].value), pricekart.Amount(amounts[0].value)
}

// struckValues parses the amounts inside strikethrough elements of a
// container.
func struckValues(container *goquery.Selection, cfg SiteConfig) map[float64]bool {
	vals := make(map[float64]bool)
	record := func(_ int, el *goquery.Selection) {
		for _, m := range currencyRe.FindAllString(el.Text(), -1) {
			if v, ok := pricekart.ParsePrice(m); ok {
				vals[v] = true
			}
		}
		// Struck price spans sometimes omit the glyph.
		if v, ok := pricekart.ParsePrice(strings.TrimSpace(el.Text())); ok {
			vals[v] = true
		}
	}

	container.Find("s, strike, del").Each(record)
	container.Find("[style*='line-through']").Each(record)
	for _, cls := range strikeClasses(cfg) {
		container.Find("[class*='" + cls + "']").Each(record)
		container.Find("[data-testid*='" + cls + "']").Each(record)
	}
	return vals
}

// isStruck reports whether an element or any ancestor up to the container
// carries a strikethrough signal.
func isStruck(el, container *goquery.Selection, cfg SiteConfig) bool {
	classes := strikeClasses(cfg)
	node := el
	for node.Length() > 0 {
		tag := goquery.NodeName(node)
		if tag == "s" || tag == "strike" || tag == "del" {
			return true
		}
		if style, ok := node.Attr("style"); ok && strings.Contains(style, "line-through") {
			return true
		}
		for _, attr := range []string{"class", "data-testid"} {
			if val, ok := node.Attr(attr); ok {
				lower := strings.ToLower(val)
				for _, cls := range classes {
					if strings.Contains(lower, strings.ToLower(cls)) {
						return true
					}
				}
			}
		}
		if len(container.Nodes) > 0 && node.Nodes[0] == container.Nodes[0] {
			break
		}
		node = node.Parent()
	}
	return false
}

func strikeClasses(cfg SiteConfig) []string {
	return append([]string{"strike", "line-through", "mrp"}, cfg.StrikeClasses...)
}

// extractLocation finds the delivery location the page was showing.
// Sites with a structured state blob prefer reading it from there; DOM
// scanning over the location hints is the fallback. Absence is not an
// error.
func extractLocation(doc *goquery.Document, cfg SiteConfig) string {
	if len(cfg.StateMarkers) > 0 {
		if state, ok := FindStateJSON(doc, cfg.StateMarkers); ok {
			if loc := WalkStateString(state, cfg.maxDepth(), LocationHints); loc != "" {
				return loc
			}
		}
	}

	for _, hint := range LocationHints {
		selectors := []string{
			"[class*='" + hint + "']",
			"[id*='" + hint + "']",
			"[data-testid*='" + hint + "']",
		}
		for _, selector := range selectors {
			var found string
			doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
				text := strings.TrimSpace(sel.Text())
				if text != "" && len(text) < pricekart.MaxLocationLen {
					found = text
					return false
				}
				return true
			})
			if found != "" {
				return found
			}
		}
	}
	return ""
}

// collector applies validation and first-wins deduplication as products are
// discovered, preserving discovery order.
type collector struct {
	cfg      SiteConfig
	stoplist map[string]bool
	seen     map[string]bool
	out      []pricekart.Product
}

func newCollector(cfg SiteConfig) *collector {
	stoplist := make(map[string]bool, len(DefaultStoplist)+len(cfg.Stoplist))
	for _, term := range DefaultStoplist {
		stoplist[term] = true
	}
	for _, term := range cfg.Stoplist {
		stoplist[strings.ToLower(term)] = true
	}
	return &collector{
		cfg:      cfg,
		stoplist: stoplist,
		seen:     make(map[string]bool),
	}
}

// add validates and deduplicates a candidate. Invalid and duplicate
// candidates are silently dropped.
func (c *collector) add(p pricekart.Product) {
	p.Name = strings.TrimSpace(p.Name)
	if c.stoplist[pricekart.NameKey(p.Name)] {
		return
	}
	if err := p.Validate(); err != nil {
		return
	}
	key := p.Key()
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.out = append(c.out, p)
}

func (c *collector) empty() bool {
	return len(c.out) == 0
}

func (c *collector) products() []pricekart.Product {
	if c.out == nil {
		return []pricekart.Product{}
	}
	return c.out
}
