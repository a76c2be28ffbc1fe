// Package slog provides logging decorators for pricekart interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/rmehra/pricekart"
)

// Ensure LoggingRegistry implements pricekart.ExtractorRegistry.
var _ pricekart.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with debug logging for site
// resolution.
type LoggingRegistry struct {
	next     pricekart.ExtractorRegistry
	detector pricekart.SiteDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next pricekart.ExtractorRegistry, detector pricekart.SiteDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(site pricekart.Site) pricekart.SiteExtractor {
	return r.next.Get(site)
}

// GetForLabel resolves the site for the label, logs it, and returns the
// matching extractor.
func (r *LoggingRegistry) GetForLabel(label string) pricekart.SiteExtractor {
	begin := time.Now()
	site := r.detector.Detect(label, "")
	siteName := string(site)
	if site == pricekart.SiteUnknown {
		siteName = "(unknown)"
	}
	r.logger.Info("site resolution",
		"label", label,
		"site", siteName,
		"duration", time.Since(begin),
	)
	return r.next.GetForLabel(label)
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(site pricekart.Site, extractor pricekart.SiteExtractor) {
	r.next.Register(site, extractor)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []pricekart.Site {
	return r.next.List()
}
