package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/aggregate"
	"github.com/rmehra/pricekart/fs"
	pkhttp "github.com/rmehra/pricekart/http"
	"github.com/robfig/cron/v3"
)

// Run executes the serve command: the scrape job API plus scheduled
// snapshot pruning. Blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ttl, err := time.ParseDuration(c.SnapshotTTL)
	if err != nil {
		return fmt.Errorf("invalid snapshot TTL %q: %w", c.SnapshotTTL, err)
	}

	fetcher, err := deps.NewFetcher()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer fetcher.Close()

	limiter := aggregate.NewSiteLimiter(c.RPS)
	reports := deps.NewReportWriter(c.ReportDir)

	runner := func(ctx context.Context, product, location string) (*pricekart.ExtractionReport, error) {
		store := fs.NewSnapshotStore(c.SnapshotDir, snapshotName(product))
		defer store.Abort()

		scraper := &aggregate.Scraper{
			Fetcher:   fetcher,
			Registry:  deps.Registry,
			Snapshots: store,
			Limiter:   limiter,
			Logger:    deps.Logger,
		}

		report, err := scraper.Run(ctx, product, location)
		if err != nil {
			return nil, err
		}
		if path, err := reports.WriteReport(ctx, report); err != nil {
			deps.Logger.Warn("report write failed", "error", err)
		} else {
			deps.Logger.Info("report written", "path", path)
		}
		return report, nil
	}

	scheduler := cron.New()
	_, err = scheduler.AddFunc(c.PruneSchedule, func() {
		removed, err := fs.Prune(c.SnapshotDir, ttl)
		if err != nil {
			deps.Logger.Warn("snapshot prune failed", "error", err)
			return
		}
		deps.Logger.Info("snapshots pruned", "removed", removed)
	})
	if err != nil {
		return fmt.Errorf("invalid prune schedule %q: %w", c.PruneSchedule, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := pkhttp.NewServer()
	server.Addr = c.Addr
	server.Jobs = pkhttp.NewJobService(runner)
	server.Logger = deps.Logger

	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	deps.Logger.Info("server listening", "url", server.URL())
	fmt.Fprintf(deps.Stdout, "listening on %s\n", server.URL())

	<-deps.Ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Close(shutdownCtx)
}
