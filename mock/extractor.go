// Package mock provides hand-written mocks for the pricekart interfaces.
package mock

import "github.com/rmehra/pricekart"

var _ pricekart.SiteExtractor = (*SiteExtractor)(nil)

// SiteExtractor is a mock implementation of pricekart.SiteExtractor.
type SiteExtractor struct {
	ExtractFn         func(html string, sourceLabel string) (*pricekart.SiteResult, error)
	ExtractLocationFn func(html string) string
	SiteFn            func() pricekart.Site
}

func (e *SiteExtractor) Extract(html string, sourceLabel string) (*pricekart.SiteResult, error) {
	return e.ExtractFn(html, sourceLabel)
}

func (e *SiteExtractor) ExtractLocation(html string) string {
	if e.ExtractLocationFn == nil {
		return ""
	}
	return e.ExtractLocationFn(html)
}

func (e *SiteExtractor) Site() pricekart.Site {
	return e.SiteFn()
}

var _ pricekart.SiteDetector = (*SiteDetector)(nil)

// SiteDetector is a mock implementation of pricekart.SiteDetector.
type SiteDetector struct {
	DetectFn func(label, html string) pricekart.Site
}

func (d *SiteDetector) Detect(label, html string) pricekart.Site {
	return d.DetectFn(label, html)
}

var _ pricekart.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of pricekart.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn         func(site pricekart.Site) pricekart.SiteExtractor
	GetForLabelFn func(label string) pricekart.SiteExtractor
	RegisterFn    func(site pricekart.Site, extractor pricekart.SiteExtractor)
	ListFn        func() []pricekart.Site
}

func (r *ExtractorRegistry) Get(site pricekart.Site) pricekart.SiteExtractor {
	return r.GetFn(site)
}

func (r *ExtractorRegistry) GetForLabel(label string) pricekart.SiteExtractor {
	return r.GetForLabelFn(label)
}

func (r *ExtractorRegistry) Register(site pricekart.Site, extractor pricekart.SiteExtractor) {
	if r.RegisterFn != nil {
		r.RegisterFn(site, extractor)
	}
}

func (r *ExtractorRegistry) List() []pricekart.Site {
	return r.ListFn()
}
