package rod

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rmehra/pricekart"
)

// DefaultRenderWait is how long the fetcher waits after page load for the
// client-side rendering to settle before capturing HTML.
const DefaultRenderWait = 2 * time.Second

// locationTimeout bounds the best-effort location selection per page.
const locationTimeout = 3 * time.Second

// Ensure Fetcher implements pricekart.Fetcher at compile time.
var _ pricekart.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered search results pages using Chrome browser
// automation. Safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager    *BrowserManager
	renderWait time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRenderWait sets the post-load settle delay. Defaults to
// DefaultRenderWait.
func WithRenderWait(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderWait = d
	}
}

// NewFetcher launches a managed headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:    manager,
		renderWait: DefaultRenderWait,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FetchRenderedPage opens the site's search page for the product query,
// best-effort applies the delivery location, waits for rendering to settle,
// and returns the final HTML.
func (f *Fetcher) FetchRenderedPage(ctx context.Context, site pricekart.Site, product, location string) (*pricekart.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	searchURL, err := SearchURL(site, product)
	if err != nil {
		return nil, err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(searchURL); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	// Location selection is best-effort: sites move their pickers around
	// and a failed attempt still leaves a usable default-location page.
	if location != "" {
		trySetLocation(page, location)
	}

	select {
	case <-time.After(f.renderWait):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}
	f.manager.PageDone()

	fetchedAt := time.Now().UTC()
	return &pricekart.RenderedPage{
		Site:      site,
		HTML:      html,
		Label:     SnapshotLabel(site, product, fetchedAt),
		FetchedAt: fetchedAt,
	}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// searchURLs holds per-site search URL templates; %s is the escaped query.
var searchURLs = map[pricekart.Site]string{
	pricekart.SiteDMart:         "https://www.dmart.in/search?searchTerm=%s",
	pricekart.SiteJioMart:       "https://www.jiomart.com/search/%s",
	pricekart.SiteNaturesBasket: "https://www.naturesbasket.co.in/Search?q=%s",
	pricekart.SiteZepto:         "https://www.zeptonow.com/search?query=%s",
	pricekart.SiteSwiggy:        "https://www.swiggy.com/instamart/search?query=%s",
}

// SearchURL returns the site's search results URL for the product query.
func SearchURL(site pricekart.Site, product string) (string, error) {
	template, ok := searchURLs[site]
	if !ok {
		return "", pricekart.Errorf(pricekart.EINVALID, "no search URL for site %q", site)
	}
	if strings.TrimSpace(product) == "" {
		return "", pricekart.Errorf(pricekart.EINVALID, "product query required")
	}
	return strings.Replace(template, "%s", url.QueryEscape(product), 1), nil
}

// locationSelectors are tried in order to find the location/pincode input.
var locationSelectors = []string{
	"input[placeholder*='pincode' i]",
	"input[placeholder*='location' i]",
	"input[placeholder*='area' i]",
	"input[name='pincode']",
	"input[data-testid*='location']",
}

// trySetLocation attempts to type the location into the site's location
// picker and confirm it. Errors are swallowed; the caller proceeds with
// whatever location the site defaulted to.
func trySetLocation(page *rod.Page, location string) {
	p := page.Timeout(locationTimeout)
	for _, sel := range locationSelectors {
		el, err := p.Element(sel)
		if err != nil {
			continue
		}
		if err := el.Input(location); err != nil {
			continue
		}
		_ = el.Type(input.Enter)
		return
	}
}

// SnapshotLabel builds the snapshot filename for one fetched page. The
// site slug prefix is what later routes the snapshot back to its extractor.
func SnapshotLabel(site pricekart.Site, product string, fetchedAt time.Time) string {
	slug := strings.ToLower(strings.Join(strings.Fields(product), "-"))
	return site.Slug() + "-" + slug + "-" + fetchedAt.UTC().Format("20060102-150405") + ".html"
}
