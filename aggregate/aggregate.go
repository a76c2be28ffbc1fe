// Package aggregate coordinates multi-site extraction and scraping.
// It routes rendered HTML documents to the matching site extractors,
// assembles cross-site reports, and orchestrates live scrape runs.
package aggregate

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rmehra/pricekart"
	"golang.org/x/sync/errgroup"
)

// Document is one rendered HTML document awaiting extraction.
type Document struct {
	// Label identifies the document's origin, typically a snapshot
	// filename. Site routing is inferred from it.
	Label string

	// HTML is the rendered page content.
	HTML string
}

// Aggregator routes documents to site extractors and assembles reports.
type Aggregator struct {
	Registry pricekart.ExtractorRegistry

	// Detector resolves the site for documents whose label matches no
	// known site. Optional; without it such documents are skipped.
	Detector pricekart.SiteDetector

	// Concurrency bounds parallel extraction. Defaults to 4.
	Concurrency int

	Logger *slog.Logger
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// ExtractAll extracts every document and assembles a report for the
// product/location query. Documents whose site cannot be determined are
// logged and skipped; they count as attempted-but-failed in the summary.
func (a *Aggregator) ExtractAll(ctx context.Context, product, location string, docs []Document) (*pricekart.ExtractionReport, error) {
	results, err := a.ExtractDocuments(ctx, docs)
	if err != nil {
		return nil, err
	}
	return pricekart.NewReport(product, location, results, len(docs)), nil
}

// ExtractDocuments extracts every document concurrently, preserving input
// order in the returned results. Unroutable documents are skipped, so the
// result may be shorter than the input.
func (a *Aggregator) ExtractDocuments(ctx context.Context, docs []Document) ([]pricekart.SiteResult, error) {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	slots := make([]*pricekart.SiteResult, len(docs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			extractor := a.resolve(doc)
			if extractor == nil {
				a.logger().Warn("skipping document for unknown site", "label", doc.Label)
				return nil
			}

			result, err := extractor.Extract(doc.HTML, doc.Label)
			if err != nil {
				a.logger().Warn("extraction failed",
					"label", doc.Label,
					"site", extractor.Site(),
					"error", err,
				)
				return nil
			}

			mu.Lock()
			slots[i] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]pricekart.SiteResult, 0, len(docs))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

// ExtractFile reads one HTML file and extracts it. The label defaults to
// the file's base name. Returns EINVALID if the site cannot be determined.
func (a *Aggregator) ExtractFile(path, label string) (*pricekart.SiteResult, error) {
	if label == "" {
		label = filepath.Base(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pricekart.Errorf(pricekart.ENOTFOUND, "read %s: %v", path, err)
	}

	doc := Document{Label: label, HTML: string(data)}
	extractor := a.resolve(doc)
	if extractor == nil {
		return nil, pricekart.Errorf(pricekart.EINVALID, "cannot determine site for %q", label)
	}
	return extractor.Extract(doc.HTML, doc.Label)
}

// ExtractDir extracts every HTML file in dir, in name order. Files for
// unrecognized sites are logged and skipped rather than failing the batch.
func (a *Aggregator) ExtractDir(ctx context.Context, dir string) ([]pricekart.SiteResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pricekart.Errorf(pricekart.ENOTFOUND, "read dir %s: %v", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			a.logger().Warn("skipping unreadable snapshot", "file", entry.Name(), "error", err)
			continue
		}
		docs = append(docs, Document{Label: entry.Name(), HTML: string(data)})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Label < docs[j].Label })

	return a.ExtractDocuments(ctx, docs)
}

// resolve picks the extractor for a document, trying the label first and
// then content detection.
func (a *Aggregator) resolve(doc Document) pricekart.SiteExtractor {
	if extractor := a.Registry.GetForLabel(doc.Label); extractor != nil {
		return extractor
	}
	if a.Detector != nil {
		if site := a.Detector.Detect(doc.Label, doc.HTML); site != pricekart.SiteUnknown {
			return a.Registry.Get(site)
		}
	}
	return nil
}
