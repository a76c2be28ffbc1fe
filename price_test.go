package pricekart_test

import (
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		want  float64
		found bool
	}{
		{
			name:  "rupee symbol with thousands separator",
			text:  "₹1,234.50",
			want:  1234.5,
			found: true,
		},
		{
			name:  "no price",
			text:  "no price here",
			found: false,
		},
		{
			name:  "bare integer",
			text:  "40",
			want:  40,
			found: true,
		},
		{
			name:  "rupee symbol with whitespace",
			text:  "₹ 45",
			want:  45,
			found: true,
		},
		{
			name:  "Rs prefix",
			text:  "Rs. 299",
			want:  299,
			found: true,
		},
		{
			name:  "INR prefix",
			text:  "INR 1,099",
			want:  1099,
			found: true,
		},
		{
			name:  "first amount wins",
			text:  "₹45 ₹30",
			want:  45,
			found: true,
		},
		{
			name:  "embedded in surrounding text",
			text:  "MRP: ₹120.00 (incl. of all taxes)",
			want:  120,
			found: true,
		},
		{
			name:  "rounds to two decimal places",
			text:  "₹99.999",
			want:  100,
			found: true,
		},
		{
			name:  "empty string",
			text:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found := pricekart.ParsePrice(tt.text)

			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}
