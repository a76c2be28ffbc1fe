// Package goquery implements the per-site product extractors using CSS
// selection over rendered HTML. Each site is a thin configuration over one
// shared extraction engine: a structured-data pass, a selector pass, and a
// generic text heuristic, tried in that order until one yields products.
package goquery

import (
	"regexp"

	"github.com/rmehra/pricekart"
)

// Default bounds for the structured-data walk.
const (
	// DefaultMaxDepth limits recursion into hydration blobs, which can be
	// arbitrarily deep on large state objects.
	DefaultMaxDepth = 15

	// maxAncestorHops limits how far a title element climbs looking for a
	// price-bearing container.
	maxAncestorHops = 6
)

// DefaultKeyHints are the object-key substrings the structured-data walk
// descends into when the broad pass finds nothing.
var DefaultKeyHints = []string{"product", "item", "search", "listing", "result", "data"}

// DefaultStoplist holds navigation and UI chrome terms that are never valid
// product names. Matching is exact after trimming and lowercasing.
var DefaultStoplist = []string{
	"home", "cart", "search", "login", "logout", "checkout", "sign in",
	"sign up", "my account", "account", "categories", "offers", "help",
	"menu", "wishlist", "notify me", "add", "add to cart", "view cart",
	"filters", "sort by", "delivery", "free delivery", "view all",
	"see all", "shop now", "buy now", "explore", "download app",
}

// SiteConfig is the data-driven variation point of the shared extraction
// engine. One config per site; the engine itself is site-agnostic.
type SiteConfig struct {
	// Site identifies the website this config extracts.
	Site pricekart.Site

	// StateMarkers are substrings locating the site's embedded JSON
	// payload (hydration blob). Empty when the site exposes none; the
	// structured-data pass is skipped in that case.
	StateMarkers []string

	// TitleSelectors match elements carrying product names.
	TitleSelectors []string

	// AnchorHref, when set, treats anchors whose href matches as product
	// links; the name comes from the anchor's title attribute or text.
	AnchorHref *regexp.Regexp

	// UseImageAlt treats img alt/title attributes as candidate names.
	UseImageAlt bool

	// PriceSelectors match elements whose text is an amount even without
	// a currency glyph (e.g. a bare "40" inside a price span).
	PriceSelectors []string

	// StrikeClasses are class-name substrings that mark a struck-through
	// amount in addition to the s/strike/del tags and line-through styles
	// every site gets.
	StrikeClasses []string

	// PriceFirst inverts the default amount-order convention: normally
	// the first amount in a container is the MRP and the second the
	// selling price, matching typical markup order. The convention is a
	// documented assumption, not a verified rule, so it is overridable
	// per site.
	PriceFirst bool

	// Stoplist extends DefaultStoplist with site-specific UI terms.
	Stoplist []string

	// KeyHints overrides DefaultKeyHints for the structured-data walk.
	KeyHints []string

	// MaxDepth overrides DefaultMaxDepth for the structured-data walk.
	MaxDepth int
}

func (c SiteConfig) maxDepth() int {
	if c.MaxDepth > 0 {
		return c.MaxDepth
	}
	return DefaultMaxDepth
}

func (c SiteConfig) keyHints() []string {
	if len(c.KeyHints) > 0 {
		return c.KeyHints
	}
	return DefaultKeyHints
}

// LocationHints are the attribute and class-name fragments scanned, in
// order, when looking for the delivery location shown on a page.
var LocationHints = []string{"location", "pincode", "area", "address"}
