package pricekart

import "strings"

// Site identifies one of the supported e-commerce websites.
type Site string

// Supported sites.
const (
	SiteUnknown       Site = ""
	SiteDMart         Site = "DMart"
	SiteJioMart       Site = "JioMart"
	SiteNaturesBasket Site = "Nature's Basket"
	SiteZepto         Site = "Zepto"
	SiteSwiggy        Site = "Swiggy"
)

// Sites lists all supported sites in a stable order.
func Sites() []Site {
	return []Site{SiteDMart, SiteJioMart, SiteNaturesBasket, SiteZepto, SiteSwiggy}
}

// siteTokens maps label substrings to sites. Tokens are matched
// case-insensitively against filenames and other source labels.
var siteTokens = []struct {
	token string
	site  Site
}{
	{"dmart", SiteDMart},
	{"jiomart", SiteJioMart},
	{"naturesbasket", SiteNaturesBasket},
	{"natures-basket", SiteNaturesBasket},
	{"zepto", SiteZepto},
	{"swiggy", SiteSwiggy},
	{"instamart", SiteSwiggy},
}

// SiteFromLabel infers the site from a source label (typically a filename)
// by case-insensitive substring match. Returns SiteUnknown if no token matches.
func SiteFromLabel(label string) Site {
	l := strings.ToLower(label)
	for _, st := range siteTokens {
		if strings.Contains(l, st.token) {
			return st.site
		}
	}
	return SiteUnknown
}

// Slug returns a lowercase identifier for the site, suitable for filenames
// and URL paths.
func (s Site) Slug() string {
	switch s {
	case SiteDMart:
		return "dmart"
	case SiteJioMart:
		return "jiomart"
	case SiteNaturesBasket:
		return "naturesbasket"
	case SiteZepto:
		return "zepto"
	case SiteSwiggy:
		return "swiggy"
	}
	return "unknown"
}
