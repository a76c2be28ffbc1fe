package goquery

import (
	"regexp"

	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteExtractor = (*DMartExtractor)(nil)

// DMartExtractor extracts product listings from DMart Ready search pages.
//
// DMart is a Next.js app, so the structured-data pass reads the __NEXT_DATA__
// hydration blob first. The selector pass targets the vertical-card_* CSS
// module classes used on search result cards; the amount spans inside
// vertical-card_price containers carry bare numbers without a currency glyph.
type DMartExtractor struct {
	config SiteConfig
}

// NewDMartExtractor creates a new DMartExtractor.
func NewDMartExtractor() *DMartExtractor {
	return &DMartExtractor{
		config: SiteConfig{
			Site:         pricekart.SiteDMart,
			StateMarkers: []string{"__NEXT_DATA__"},
			TitleSelectors: []string{
				"[class*='vertical-card_title']",
				"[class*='product-card_title']",
			},
			AnchorHref: regexp.MustCompile(`/product/`),
			PriceSelectors: []string{
				"[class*='vertical-card_amount']",
				"[class*='vertical-card_price']",
				"[class*='product-card_price']",
			},
			// vertical-card_strike marks the crossed-out MRP; the
			// "strike" substring default covers it.
			Stoplist: []string{"dmart ready", "pickup point"},
		},
	}
}

// Extract parses a DMart search results page.
func (e *DMartExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return ExtractWithConfig(html, sourceLabel, e.config)
}

// ExtractLocation returns the pickup/delivery location shown on the page.
func (e *DMartExtractor) ExtractLocation(html string) string {
	return ExtractLocationWithConfig(html, e.config)
}

// Site returns the site this extractor handles.
func (e *DMartExtractor) Site() pricekart.Site {
	return pricekart.SiteDMart
}
