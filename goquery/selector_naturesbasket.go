package goquery

import (
	"regexp"

	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteExtractor = (*NaturesBasketExtractor)(nil)

// NaturesBasketExtractor extracts product listings from Nature's Basket
// search pages.
//
// The site exposes no hydration blob, so extraction starts at the selector
// pass. Product names appear in Product-Name blocks, on product-detail
// anchors, and in image alt text; MRPs render inside old-price / strike
// elements.
type NaturesBasketExtractor struct {
	config SiteConfig
}

// NewNaturesBasketExtractor creates a new NaturesBasketExtractor.
func NewNaturesBasketExtractor() *NaturesBasketExtractor {
	return &NaturesBasketExtractor{
		config: SiteConfig{
			Site: pricekart.SiteNaturesBasket,
			TitleSelectors: []string{
				"[class*='Product-Name']",
				"[class*='product-name']",
				"[class*='prodName']",
			},
			AnchorHref:  regexp.MustCompile(`(?i)/(p|products)/`),
			UseImageAlt: true,
			PriceSelectors: []string{
				"[class*='Price']",
				"[class*='price']",
			},
			StrikeClasses: []string{"old-price", "OldPrice"},
			Stoplist:      []string{"gourmet", "store locator"},
		},
	}
}

// Extract parses a Nature's Basket search results page.
func (e *NaturesBasketExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return ExtractWithConfig(html, sourceLabel, e.config)
}

// ExtractLocation returns the delivery location shown on the page.
func (e *NaturesBasketExtractor) ExtractLocation(html string) string {
	return ExtractLocationWithConfig(html, e.config)
}

// Site returns the site this extractor handles.
func (e *NaturesBasketExtractor) Site() pricekart.Site {
	return pricekart.SiteNaturesBasket
}
