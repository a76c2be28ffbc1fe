package pricekart_test

import (
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/stretchr/testify/assert"
)

func TestSiteFromLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  pricekart.Site
	}{
		{"dmart-lays-2025.html", pricekart.SiteDMart},
		{"jiomart-lays-2025.html", pricekart.SiteJioMart},
		{"naturesbasket-lays.html", pricekart.SiteNaturesBasket},
		{"zepto-lays.html", pricekart.SiteZepto},
		{"swiggy-lays.html", pricekart.SiteSwiggy},
		{"instamart-lays.html", pricekart.SiteSwiggy},
		{"DMART-UPPERCASE.HTML", pricekart.SiteDMart},
		{"unknown-z.html", pricekart.SiteUnknown},
		{"", pricekart.SiteUnknown},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, pricekart.SiteFromLabel(tt.label))
		})
	}
}

func TestSite_Slug(t *testing.T) {
	t.Parallel()

	for _, site := range pricekart.Sites() {
		assert.NotEqual(t, "unknown", site.Slug())
		// Slugs must round-trip through label routing.
		assert.Equal(t, site, pricekart.SiteFromLabel(site.Slug()+"-x.html"))
	}
}
