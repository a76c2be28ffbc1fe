package goquery

import (
	"regexp"

	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteExtractor = (*ZeptoExtractor)(nil)

// ZeptoExtractor extracts product listings from Zepto search pages.
//
// Zepto is a Next.js app; the structured-data pass reads __NEXT_DATA__
// first. The selector pass relies on the data-testid attributes Zepto
// puts on product cards, with class-substring fallbacks for older builds.
type ZeptoExtractor struct {
	config SiteConfig
}

// NewZeptoExtractor creates a new ZeptoExtractor.
func NewZeptoExtractor() *ZeptoExtractor {
	return &ZeptoExtractor{
		config: SiteConfig{
			Site:         pricekart.SiteZepto,
			StateMarkers: []string{"__NEXT_DATA__"},
			TitleSelectors: []string{
				"[data-testid='product-card-name']",
				"[class*='product-card-name']",
			},
			AnchorHref: regexp.MustCompile(`/pn/`),
			PriceSelectors: []string{
				"[data-testid='product-card-price']",
				"[class*='product-card-price']",
			},
			Stoplist: []string{"zepto pass", "superfast delivery"},
		},
	}
}

// Extract parses a Zepto search results page.
func (e *ZeptoExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return ExtractWithConfig(html, sourceLabel, e.config)
}

// ExtractLocation returns the delivery location shown on the page.
func (e *ZeptoExtractor) ExtractLocation(html string) string {
	return ExtractLocationWithConfig(html, e.config)
}

// Site returns the site this extractor handles.
func (e *ZeptoExtractor) Site() pricekart.Site {
	return pricekart.SiteZepto
}
