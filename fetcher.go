package pricekart

import (
	"context"
	"time"
)

// RenderedPage is the final rendered HTML of one site's search results page.
type RenderedPage struct {
	Site      Site
	HTML      string
	Label     string // source label, used for routing and traceability
	FetchedAt time.Time
}

// Fetcher retrieves rendered search results pages from the supported sites.
// Implementations use browser automation to handle JavaScript-rendered
// content and location selection.
type Fetcher interface {
	// FetchRenderedPage opens the site's search page for the product
	// query, best-effort applies the delivery location, waits for the
	// page to render, and returns the final HTML.
	// The context controls timeout and cancellation.
	FetchRenderedPage(ctx context.Context, site Site, product, location string) (*RenderedPage, error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// SnapshotStore persists rendered HTML snapshots with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type SnapshotStore interface {
	Save(ctx context.Context, page *RenderedPage) error
	Commit() error
	Abort() error
}

// SiteLimiter paces requests to the supported sites so that scraping
// stays polite. Implementations track each site independently.
type SiteLimiter interface {
	// Wait blocks until the limiter allows a request to the site.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context, site Site) error
}

// ReportWriter persists extraction reports.
type ReportWriter interface {
	// WriteReport persists a report and returns the path it was written to.
	WriteReport(ctx context.Context, report *ExtractionReport) (string, error)
}
