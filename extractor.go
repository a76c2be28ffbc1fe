package pricekart

// MaxLocationLen bounds the delivery-location string; longer matches are
// assumed to be page chrome rather than a location.
const MaxLocationLen = 100

// SiteExtractor converts one site's rendered HTML into normalized products.
//
// Implementations never fail on malformed or missing data: a page with no
// recognizable products yields an empty result, not an error. Errors are
// reserved for structurally invalid input.
type SiteExtractor interface {
	// Extract parses the rendered HTML of a search results page and
	// returns the products found together with a best-effort delivery
	// location. sourceLabel identifies the source document and is carried
	// through to the result for traceability.
	Extract(html string, sourceLabel string) (*SiteResult, error)

	// ExtractLocation returns the delivery location the page was showing,
	// or an empty string if nothing plausible was found. Absence is not
	// an error.
	ExtractLocation(html string) string

	// Site returns the site this extractor handles.
	Site() Site
}

// SiteDetector identifies sites from source labels and page content.
type SiteDetector interface {
	// Detect returns the site for a document, preferring the source label
	// and falling back to site-specific markers in the HTML.
	// Returns SiteUnknown if the site cannot be determined.
	Detect(label, html string) Site
}

// ExtractorRegistry manages per-site extractors.
type ExtractorRegistry interface {
	// Get returns the extractor for a site.
	// Returns nil if no extractor is registered for the site.
	Get(site Site) SiteExtractor

	// GetForLabel infers the site from a source label and returns the
	// matching extractor. Returns nil if the label matches no known site.
	GetForLabel(label string) SiteExtractor

	// Register adds an extractor for a site.
	Register(site Site, extractor SiteExtractor)

	// List returns all registered sites.
	List() []Site
}
