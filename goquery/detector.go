package goquery

import (
	"strings"

	"github.com/rmehra/pricekart"
)

var _ pricekart.SiteDetector = (*Detector)(nil)

// Detector identifies which site a rendered document came from. The source
// label (filename) is authoritative when it carries a site token; content
// sniffing over site-specific markers is the fallback for documents with
// opaque labels.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// contentMarkers are substrings unique enough to identify a site from its
// rendered HTML. Checked in order; first hit wins.
var contentMarkers = []struct {
	marker string
	site   pricekart.Site
}{
	{"dmart.in", pricekart.SiteDMart},
	{"vertical-card_", pricekart.SiteDMart},
	{"jiomart.com", pricekart.SiteJioMart},
	{"plp-card-details", pricekart.SiteJioMart},
	{"naturesbasket.co.in", pricekart.SiteNaturesBasket},
	{"zeptonow.com", pricekart.SiteZepto},
	{"swiggy.com/instamart", pricekart.SiteSwiggy},
	{"___INITIAL_STATE___", pricekart.SiteSwiggy},
}

// Detect returns the site for a document, preferring the source label and
// falling back to content markers. Returns SiteUnknown if neither matches.
func (d *Detector) Detect(label, html string) pricekart.Site {
	if site := pricekart.SiteFromLabel(label); site != pricekart.SiteUnknown {
		return site
	}
	for _, cm := range contentMarkers {
		if strings.Contains(html, cm.marker) {
			return cm.site
		}
	}
	return pricekart.SiteUnknown
}
