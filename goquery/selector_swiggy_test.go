package goquery_test

import (
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwiggyExtractor(t *testing.T) {
	t.Parallel()

	e := goquery.NewSwiggyExtractor()
	assert.Equal(t, pricekart.SiteSwiggy, e.Site())

	t.Run("extracts from INITIAL_STATE blob with location", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<script>window.___INITIAL_STATE___ = {"instamart":{"searchV2":{"widgets":[
	{"title":"Lays Classic Salted 52g","price":"₹20","mrp":"₹25"},
	{"title":"Kurkure Masala Munch 90g","price":"₹18"}
]}},"userLocation":{"address":"RT Nagar, Bengaluru"}};</script>
</body></html>`

		result, err := e.Extract(html, "swiggy-lays.html")

		require.NoError(t, err)
		assert.Equal(t, pricekart.SiteSwiggy, result.Website)
		require.Len(t, result.Products, 2)

		p := result.Products[0]
		assert.Equal(t, "Lays Classic Salted 52g", p.Name)
		require.NotNil(t, p.Price)
		require.NotNil(t, p.MRP)
		assert.InDelta(t, 20.0, *p.Price, 0.001)
		assert.InDelta(t, 25.0, *p.MRP, 0.001)

		assert.Equal(t, "RT Nagar, Bengaluru", result.Location)
	})

	t.Run("extracts from item testids", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<div class="sc-card">
	<div data-testid="item-name">Lays Classic Salted 52g</div>
	<div data-testid="item-mrp">₹25</div>
	<div data-testid="item-offer-price">₹20</div>
</div>
</body></html>`

		result, err := e.Extract(html, "swiggy-lays.html")

		require.NoError(t, err)
		require.Len(t, result.Products, 1)

		p := result.Products[0]
		require.NotNil(t, p.Price)
		require.NotNil(t, p.MRP)
		assert.InDelta(t, 20.0, *p.Price, 0.001)
		assert.InDelta(t, 25.0, *p.MRP, 0.001)
	})
}
