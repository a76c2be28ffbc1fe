package aggregate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/aggregate"
	"github.com/rmehra/pricekart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoSiteRegistry returns a mock registry serving DMart and Zepto with
// extractors that report a fixed number of products per site.
func twoSiteRegistry(products map[pricekart.Site]int) *mock.ExtractorRegistry {
	extractorFor := func(site pricekart.Site) pricekart.SiteExtractor {
		return &mock.SiteExtractor{
			ExtractFn: func(html, label string) (*pricekart.SiteResult, error) {
				ps := make([]pricekart.Product, products[site])
				for i := range ps {
					ps[i] = pricekart.Product{Name: "Product", Website: site, Price: pricekart.Amount(10)}
				}
				return &pricekart.SiteResult{Website: site, Filename: label, Products: ps}, nil
			},
			SiteFn: func() pricekart.Site { return site },
		}
	}
	return &mock.ExtractorRegistry{
		GetFn: func(site pricekart.Site) pricekart.SiteExtractor { return extractorFor(site) },
		ListFn: func() []pricekart.Site {
			return []pricekart.Site{pricekart.SiteDMart, pricekart.SiteZepto}
		},
	}
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	t.Run("scrapes all registered sites", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchRenderedPageFn: func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
				return &pricekart.RenderedPage{Site: site, HTML: "<html></html>", Label: site.Slug() + "-milk.html"}, nil
			},
		}

		s := &aggregate.Scraper{
			Fetcher:  fetcher,
			Registry: twoSiteRegistry(map[pricekart.Site]int{pricekart.SiteDMart: 2, pricekart.SiteZepto: 1}),
		}

		report, err := s.Run(context.Background(), "milk", "Mumbai")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Summary.TotalWebsites)
		assert.Equal(t, 2, report.Summary.Successful)
		assert.Equal(t, 0, report.Summary.Failed)
		assert.Equal(t, 3, report.Summary.TotalProducts)
	})

	t.Run("tolerates single-site failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchRenderedPageFn: func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
				if site == pricekart.SiteZepto {
					return nil, pricekart.Errorf(pricekart.EUNAVAILABLE, "timeout")
				}
				return &pricekart.RenderedPage{Site: site, HTML: "<html></html>"}, nil
			},
		}

		s := &aggregate.Scraper{
			Fetcher:  fetcher,
			Registry: twoSiteRegistry(map[pricekart.Site]int{pricekart.SiteDMart: 1}),
		}

		report, err := s.Run(context.Background(), "milk", "Mumbai")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Summary.TotalWebsites)
		assert.Equal(t, 1, report.Summary.Successful)
		assert.Equal(t, 1, report.Summary.Failed)
	})

	t.Run("fails when every site fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchRenderedPageFn: func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
				return nil, pricekart.Errorf(pricekart.EUNAVAILABLE, "blocked")
			},
		}

		s := &aggregate.Scraper{
			Fetcher:  fetcher,
			Registry: twoSiteRegistry(nil),
		}

		_, err := s.Run(context.Background(), "milk", "Mumbai")
		require.Error(t, err)
		assert.Equal(t, pricekart.EUNAVAILABLE, pricekart.ErrorCode(err))
	})

	t.Run("validates the query", func(t *testing.T) {
		t.Parallel()

		s := &aggregate.Scraper{Registry: twoSiteRegistry(nil)}

		_, err := s.Run(context.Background(), "", "Mumbai")
		assert.Equal(t, pricekart.EINVALID, pricekart.ErrorCode(err))

		_, err = s.Run(context.Background(), "milk", "")
		assert.Equal(t, pricekart.EINVALID, pricekart.ErrorCode(err))
	})

	t.Run("saves and commits snapshots", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var saved []string
		committed := false

		store := &mock.SnapshotStore{
			SaveFn: func(ctx context.Context, page *pricekart.RenderedPage) error {
				mu.Lock()
				saved = append(saved, page.Label)
				mu.Unlock()
				return nil
			},
			CommitFn: func() error {
				committed = true
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchRenderedPageFn: func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
				return &pricekart.RenderedPage{Site: site, HTML: "<html></html>", Label: site.Slug() + ".html"}, nil
			},
		}

		s := &aggregate.Scraper{
			Fetcher:   fetcher,
			Registry:  twoSiteRegistry(map[pricekart.Site]int{pricekart.SiteDMart: 1, pricekart.SiteZepto: 1}),
			Snapshots: store,
		}

		_, err := s.Run(context.Background(), "milk", "Mumbai")
		require.NoError(t, err)
		assert.Len(t, saved, 2)
		assert.True(t, committed)
	})

	t.Run("honors the rate limiter", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		waits := 0

		fetcher := &mock.Fetcher{
			FetchRenderedPageFn: func(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
				return &pricekart.RenderedPage{Site: site, HTML: "<html></html>"}, nil
			},
		}

		s := &aggregate.Scraper{
			Fetcher:  fetcher,
			Registry: twoSiteRegistry(map[pricekart.Site]int{pricekart.SiteDMart: 1, pricekart.SiteZepto: 1}),
			Limiter: limiterFunc(func(ctx context.Context, site pricekart.Site) error {
				mu.Lock()
				waits++
				mu.Unlock()
				return nil
			}),
		}

		_, err := s.Run(context.Background(), "milk", "Mumbai")
		require.NoError(t, err)
		assert.Equal(t, 2, waits)
	})
}

type limiterFunc func(ctx context.Context, site pricekart.Site) error

func (f limiterFunc) Wait(ctx context.Context, site pricekart.Site) error { return f(ctx, site) }

func TestSiteLimiter_Wait(t *testing.T) {
	t.Parallel()

	l := aggregate.NewSiteLimiter(1000)
	for _, site := range pricekart.Sites() {
		require.NoError(t, l.Wait(context.Background(), site))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := aggregate.NewSiteLimiter(0.001)
	require.NoError(t, slow.Wait(context.Background(), pricekart.SiteDMart))
	assert.Error(t, slow.Wait(ctx, pricekart.SiteDMart))
}
