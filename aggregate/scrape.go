package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rmehra/pricekart"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates one live scrape run: it fetches each supported
// site's rendered search results, optionally snapshots the HTML, extracts
// products, and assembles a cross-site report.
type Scraper struct {
	Fetcher  pricekart.Fetcher
	Registry pricekart.ExtractorRegistry

	// Snapshots, if set, receives every fetched page. Pages are committed
	// together at the end of the run.
	Snapshots pricekart.SnapshotStore

	// Limiter, if set, paces fetches per site.
	Limiter pricekart.SiteLimiter

	// Concurrency bounds parallel site fetches. Defaults to the number
	// of registered sites.
	Concurrency int

	Logger *slog.Logger
}

// siteOutcome holds the result of scraping a single site.
type siteOutcome struct {
	position int
	result   *pricekart.SiteResult
	err      error
}

// Run scrapes every registered site for the product/location query.
// Individual site failures are logged and reflected in the report summary;
// Run fails only when no site could be scraped at all or the context is
// canceled.
func (s *Scraper) Run(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
	if product == "" {
		return nil, pricekart.Errorf(pricekart.EINVALID, "product query required")
	}
	if location == "" {
		return nil, pricekart.Errorf(pricekart.EINVALID, "location query required")
	}

	sites := s.Registry.List()
	if len(sites) == 0 {
		return nil, pricekart.Errorf(pricekart.EINTERNAL, "no site extractors registered")
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = len(sites)
	}

	start := time.Now()
	outcomes := make([]siteOutcome, len(sites))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			result, err := s.scrapeSite(gctx, site, product, location)
			mu.Lock()
			outcomes[i] = siteOutcome{position: i, result: result, err: err}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []pricekart.SiteResult
	failures := 0
	for i, o := range outcomes {
		if o.err != nil {
			failures++
			s.logger().Warn("site scrape failed", "site", sites[i], "error", o.err)
			continue
		}
		results = append(results, *o.result)
	}

	if failures == len(sites) {
		return nil, pricekart.Errorf(pricekart.EUNAVAILABLE, "all %d sites failed", len(sites))
	}

	if s.Snapshots != nil {
		if err := s.Snapshots.Commit(); err != nil {
			s.logger().Warn("snapshot commit failed", "error", err)
		}
	}

	report := pricekart.NewReport(product, location, results, len(sites))
	s.logger().Info("scrape run finished",
		"product", product,
		"location", location,
		"sites", len(sites),
		"successful", report.Summary.Successful,
		"products", report.Summary.TotalProducts,
		"duration", time.Since(start),
	)
	return report, nil
}

// scrapeSite fetches and extracts one site.
func (s *Scraper) scrapeSite(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.SiteResult, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, site); err != nil {
			return nil, err
		}
	}

	page, err := s.Fetcher.FetchRenderedPage(ctx, site, product, location)
	if err != nil {
		return nil, err
	}

	if s.Snapshots != nil {
		if err := s.Snapshots.Save(ctx, page); err != nil {
			s.logger().Warn("snapshot save failed", "site", site, "error", err)
		}
	}

	extractor := s.Registry.Get(site)
	if extractor == nil {
		return nil, pricekart.Errorf(pricekart.EINTERNAL, "no extractor for site %s", site)
	}
	return extractor.Extract(page.HTML, page.Label)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
