package goquery

import (
	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteExtractor = (*SwiggyExtractor)(nil)

// SwiggyExtractor extracts product listings from Swiggy Instamart search
// pages.
//
// Instamart server-renders a window.___INITIAL_STATE___ assignment; the
// structured-data pass reads it first. Markup classes are build-mangled, so
// the selector pass leans on data-testid attributes.
type SwiggyExtractor struct {
	config SiteConfig
}

// NewSwiggyExtractor creates a new SwiggyExtractor.
func NewSwiggyExtractor() *SwiggyExtractor {
	return &SwiggyExtractor{
		config: SiteConfig{
			Site:         pricekart.SiteSwiggy,
			StateMarkers: []string{"window.___INITIAL_STATE___"},
			TitleSelectors: []string{
				"[data-testid='item-name']",
				"[class*='item-name']",
			},
			PriceSelectors: []string{
				"[data-testid='item-offer-price']",
				"[data-testid='item-price']",
				"[class*='item-price']",
			},
			StrikeClasses: []string{"item-mrp"},
			Stoplist:      []string{"instamart", "swiggy one"},
		},
	}
}

// Extract parses an Instamart search results page.
func (e *SwiggyExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return ExtractWithConfig(html, sourceLabel, e.config)
}

// ExtractLocation returns the delivery location shown on the page,
// preferring the address recorded in the state blob.
func (e *SwiggyExtractor) ExtractLocation(html string) string {
	return ExtractLocationWithConfig(html, e.config)
}

// Site returns the site this extractor handles.
func (e *SwiggyExtractor) Site() pricekart.Site {
	return pricekart.SiteSwiggy
}
