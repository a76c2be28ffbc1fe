package goquery

import "github.com/rmehra/pricekart"

var _ pricekart.ExtractorRegistry = (*Registry)(nil)

// Registry manages the per-site extractors and resolves them from source
// labels. Dispatch is a fixed one-to-one mapping from site to extractor;
// the label-to-site inference is a pure substring match done once at the
// registry boundary.
type Registry struct {
	extractors map[pricekart.Site]pricekart.SiteExtractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[pricekart.Site]pricekart.SiteExtractor),
	}
}

// NewDefaultRegistry creates a Registry with all five site extractors
// registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pricekart.SiteDMart, NewDMartExtractor())
	r.Register(pricekart.SiteJioMart, NewJioMartExtractor())
	r.Register(pricekart.SiteNaturesBasket, NewNaturesBasketExtractor())
	r.Register(pricekart.SiteZepto, NewZeptoExtractor())
	r.Register(pricekart.SiteSwiggy, NewSwiggyExtractor())
	return r
}

// Get returns the extractor for a site.
// Returns nil if no extractor is registered for the site.
func (r *Registry) Get(site pricekart.Site) pricekart.SiteExtractor {
	return r.extractors[site]
}

// GetForLabel infers the site from a source label and returns the matching
// extractor. Returns nil if the label matches no known site or no extractor
// is registered for it.
func (r *Registry) GetForLabel(label string) pricekart.SiteExtractor {
	return r.extractors[pricekart.SiteFromLabel(label)]
}

// Register adds an extractor for a site.
// If an extractor is already registered for the site, it is replaced.
func (r *Registry) Register(site pricekart.Site, extractor pricekart.SiteExtractor) {
	r.extractors[site] = extractor
}

// List returns all registered sites.
func (r *Registry) List() []pricekart.Site {
	var sites []pricekart.Site
	for _, site := range pricekart.Sites() {
		if _, ok := r.extractors[site]; ok {
			sites = append(sites, site)
		}
	}
	return sites
}
