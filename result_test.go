package pricekart_test

import (
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	results := []pricekart.SiteResult{
		{
			Website: pricekart.SiteDMart,
			Products: []pricekart.Product{
				{Name: "Potato 1kg", Website: pricekart.SiteDMart},
				{Name: "Onion 1kg", Website: pricekart.SiteDMart},
			},
		},
		{
			Website: pricekart.SiteZepto,
			Products: []pricekart.Product{
				{Name: "Potato 1kg", Website: pricekart.SiteZepto},
			},
		},
		{Website: pricekart.SiteSwiggy},
	}

	report := pricekart.NewReport("potato", "RT Nagar", results, 5)

	require.NotNil(t, report)
	assert.True(t, report.Success)
	assert.Equal(t, "potato", report.Product)
	assert.Equal(t, "RT Nagar", report.Location)
	assert.Equal(t, 5, report.Summary.TotalWebsites)
	assert.Equal(t, 2, report.Summary.Successful)
	assert.Equal(t, 3, report.Summary.Failed)

	// totalProducts must equal the sum of per-site product counts.
	total := 0
	for _, r := range report.Data {
		total += len(r.Products)
	}
	assert.Equal(t, total, report.Summary.TotalProducts)
}

func TestNewReport_TotalWebsitesNeverBelowResults(t *testing.T) {
	t.Parallel()

	results := []pricekart.SiteResult{
		{Website: pricekart.SiteDMart},
		{Website: pricekart.SiteZepto},
	}

	report := pricekart.NewReport("lays", "Indiranagar", results, 0)

	assert.Equal(t, 2, report.Summary.TotalWebsites)
}
