package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/rmehra/pricekart"
)

// Ensure LoggingFetcher implements pricekart.Fetcher.
var _ pricekart.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   pricekart.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pricekart.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchRenderedPage logs the fetch and delegates to the wrapped fetcher.
func (f *LoggingFetcher) FetchRenderedPage(ctx context.Context, site pricekart.Site, product, location string) (page *pricekart.RenderedPage, err error) {
	defer func(begin time.Time) {
		size := 0
		if page != nil {
			size = len(page.HTML)
		}
		f.logger.Info("fetch",
			"site", site,
			"product", product,
			"location", location,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchRenderedPage(ctx, site, product, location)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
