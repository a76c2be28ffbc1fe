package pricekart

import (
	"math"
	"regexp"
	"strings"
)

// Product name length bounds, applied after trimming.
const (
	MinNameLen = 3
	MaxNameLen = 200
)

// Product represents one scraped listing. Products are value objects:
// created once during extraction of a single document and never mutated.
type Product struct {
	// Name is the listing title as shown on the site.
	Name string `json:"name"`

	// Price is the current selling price in rupees, rounded to 2 decimal
	// places. Nil when no price could be resolved.
	Price *float64 `json:"price"`

	// MRP is the pre-discount maximum retail price. MRP >= Price is
	// expected but not enforced. Nil when the site shows no struck-through
	// price.
	MRP *float64 `json:"mrp"`

	// Website identifies the site the product was scraped from.
	Website Site `json:"website"`
}

// numericOnly matches names consisting entirely of digits, punctuation and
// whitespace. Such "names" are artifacts of price fragments and UI chrome.
var numericOnly = regexp.MustCompile(`^[0-9\s[:punct:]]+$`)

// Validate returns an error if the product contains invalid fields.
func (p *Product) Validate() error {
	name := strings.TrimSpace(p.Name)
	if len(name) < MinNameLen {
		return Errorf(EINVALID, "product name too short: %q", name)
	}
	if len(name) >= MaxNameLen {
		return Errorf(EINVALID, "product name too long: %q", name)
	}
	if numericOnly.MatchString(name) {
		return Errorf(EINVALID, "product name is numeric or punctuation only: %q", name)
	}
	if p.Price != nil && *p.Price < 0 {
		return Errorf(EINVALID, "product price is negative: %v", *p.Price)
	}
	if p.MRP != nil && *p.MRP < 0 {
		return Errorf(EINVALID, "product MRP is negative: %v", *p.MRP)
	}
	if p.Website == SiteUnknown {
		return Errorf(EINVALID, "product website required")
	}
	return nil
}

// Key returns the deduplication key for the product: the case-insensitive,
// whitespace-normalized form of the name. Two products with the same key
// within one document are duplicates; the first occurrence wins.
func (p *Product) Key() string {
	return NameKey(p.Name)
}

// NameKey normalizes a product name for deduplication.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Round2 rounds a monetary amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Amount is a convenience constructor for optional price fields.
func Amount(v float64) *float64 {
	v = Round2(v)
	return &v
}
