package mock

import (
	"context"

	"github.com/rmehra/pricekart"
)

var _ pricekart.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pricekart.Fetcher.
type Fetcher struct {
	FetchRenderedPageFn func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error)
	CloseFn             func() error
}

func (f *Fetcher) FetchRenderedPage(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
	return f.FetchRenderedPageFn(ctx, site, product, location)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ pricekart.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of pricekart.SnapshotStore.
type SnapshotStore struct {
	SaveFn   func(ctx context.Context, page *pricekart.RenderedPage) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *SnapshotStore) Save(ctx context.Context, page *pricekart.RenderedPage) error {
	return s.SaveFn(ctx, page)
}

func (s *SnapshotStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *SnapshotStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}

var _ pricekart.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of pricekart.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *pricekart.ExtractionReport) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *pricekart.ExtractionReport) (string, error) {
	return w.WriteReportFn(ctx, report)
}
