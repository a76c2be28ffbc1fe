package slog

import (
	"log/slog"
	"time"

	"github.com/rmehra/pricekart"
)

// Ensure LoggingExtractor implements pricekart.SiteExtractor.
var _ pricekart.SiteExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a SiteExtractor with info logging of extraction
// outcomes.
type LoggingExtractor struct {
	next   pricekart.SiteExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pricekart.SiteExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(html, sourceLabel)
	if err != nil {
		e.logger.Error("extraction failed",
			"site", e.next.Site(),
			"label", sourceLabel,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	e.logger.Info("extraction",
		"site", e.next.Site(),
		"label", sourceLabel,
		"products", len(result.Products),
		"location", result.Location,
		"duration", time.Since(begin),
	)
	return result, nil
}

// ExtractLocation delegates to the wrapped extractor.
func (e *LoggingExtractor) ExtractLocation(html string) string {
	return e.next.ExtractLocation(html)
}

// Site delegates to the wrapped extractor.
func (e *LoggingExtractor) Site() pricekart.Site {
	return e.next.Site()
}
