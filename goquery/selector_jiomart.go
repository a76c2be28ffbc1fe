package goquery

import (
	"regexp"

	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteExtractor = (*JioMartExtractor)(nil)

// JioMartExtractor extracts product listings from JioMart search pages.
//
// JioMart server-renders a window.__INITIAL_STATE__ assignment holding the
// search results, which the structured-data pass reads first. The selector
// pass targets the plp-card-* classes of the product listing grid.
type JioMartExtractor struct {
	config SiteConfig
}

// NewJioMartExtractor creates a new JioMartExtractor.
func NewJioMartExtractor() *JioMartExtractor {
	return &JioMartExtractor{
		config: SiteConfig{
			Site:         pricekart.SiteJioMart,
			StateMarkers: []string{"window.__INITIAL_STATE__"},
			TitleSelectors: []string{
				"[class*='plp-card-details-name']",
				".clsgetname",
			},
			AnchorHref: regexp.MustCompile(`/p/`),
			PriceSelectors: []string{
				"[class*='plp-card-details-price'] span",
				"[class*='jm-heading-xxs']",
			},
			StrikeClasses: []string{"line-through", "jm-mrp"},
			Stoplist:      []string{"jiomart wallet", "quick delivery"},
		},
	}
}

// Extract parses a JioMart search results page.
func (e *JioMartExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return ExtractWithConfig(html, sourceLabel, e.config)
}

// ExtractLocation returns the delivery location shown on the page,
// preferring the pincode/area recorded in the state blob.
func (e *JioMartExtractor) ExtractLocation(html string) string {
	return ExtractLocationWithConfig(html, e.config)
}

// Site returns the site this extractor handles.
func (e *JioMartExtractor) Site() pricekart.Site {
	return pricekart.SiteJioMart
}
