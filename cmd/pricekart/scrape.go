package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/aggregate"
	"github.com/rmehra/pricekart/fs"
)

// Run executes the scrape command: one full run across all sites, report
// printed to stdout.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}

	ctx, cancel := context.WithTimeout(deps.Ctx, timeout)
	defer cancel()

	fetcher, err := deps.NewFetcher()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer fetcher.Close()

	var snapshots pricekart.SnapshotStore
	if !c.NoSnapshots {
		store := fs.NewSnapshotStore(c.SnapshotDir, snapshotName(c.Product))
		defer store.Abort()
		snapshots = store
	}

	scraper := &aggregate.Scraper{
		Fetcher:   fetcher,
		Registry:  deps.Registry,
		Snapshots: snapshots,
		Limiter:   aggregate.NewSiteLimiter(c.RPS),
		Logger:    deps.Logger,
	}

	report, err := scraper.Run(ctx, c.Product, c.Location)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricekart.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		path, err := deps.NewReportWriter(c.Out).WriteReport(ctx, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "report written to %s\n", path)
	}

	return printReport(deps.Stdout, report)
}

// printReport writes the report JSON to w.
func printReport(w io.Writer, report *pricekart.ExtractionReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// snapshotName derives the snapshot directory name for a product query.
func snapshotName(product string) string {
	name := fs.SafeFilename(strings.ToLower(strings.Join(strings.Fields(product), "-")))
	if name == "" {
		name = "run"
	}
	return name
}
