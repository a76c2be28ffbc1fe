package pricekart

import "time"

// SiteResult is the output of extracting one HTML document.
type SiteResult struct {
	// Website identifies the extractor that produced the result.
	Website Site `json:"website"`

	// Location is the delivery location the page was showing when rendered.
	// Best-effort; empty when nothing plausible was found.
	Location string `json:"location,omitempty"`

	// Products holds the extracted listings in discovery order.
	Products []Product `json:"products"`

	// Filename identifies the source document. Opaque, kept for
	// traceability only.
	Filename string `json:"filename,omitempty"`

	// ContentHash is a hash of the source HTML, used to tell apart
	// re-renders of the same query.
	ContentHash string `json:"contentHash,omitempty"`
}

// Summary holds aggregate counts for one extraction run.
type Summary struct {
	TotalWebsites int `json:"totalWebsites"`
	Successful    int `json:"successful"`
	Failed        int `json:"failed"`
	TotalProducts int `json:"totalProducts"`
}

// ExtractionReport is the collection of SiteResults across one run.
// TotalProducts always equals the sum of len(Products) over Data.
type ExtractionReport struct {
	Success   bool         `json:"success"`
	Timestamp time.Time    `json:"timestamp"`
	Product   string       `json:"product"`
	Location  string       `json:"location"`
	Data      []SiteResult `json:"data"`
	Summary   Summary      `json:"summary"`
}

// NewReport assembles a report from per-site results. totalWebsites is the
// number of sites attempted, which may exceed len(results) when fetching
// failed for some sites. A site counts as successful when its extraction
// yielded at least one product.
func NewReport(product, location string, results []SiteResult, totalWebsites int) *ExtractionReport {
	if totalWebsites < len(results) {
		totalWebsites = len(results)
	}

	summary := Summary{TotalWebsites: totalWebsites}
	for _, r := range results {
		summary.TotalProducts += len(r.Products)
		if len(r.Products) > 0 {
			summary.Successful++
		}
	}
	summary.Failed = summary.TotalWebsites - summary.Successful

	return &ExtractionReport{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Product:   product,
		Location:  location,
		Data:      results,
		Summary:   summary,
	}
}
