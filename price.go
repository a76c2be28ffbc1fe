package pricekart

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// priceRe locates the first currency-bearing numeric substring: an optional
// currency marker (₹, Rs, Rs., INR), optional whitespace, then digits with
// optional comma groups and an optional decimal part.
var priceRe = regexp.MustCompile(`(?i)(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// ParsePrice parses a currency-bearing text fragment into a normalized
// amount rounded to 2 decimal places. The second return value reports
// whether a price was found. ParsePrice is a pure function and never panics
// on malformed input.
func ParsePrice(text string) (float64, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return Round2(v), true
}
