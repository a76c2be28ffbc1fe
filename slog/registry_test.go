package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/mock"
	pkslog "github.com/rmehra/pricekart/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRegistry_GetForLabel(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved site with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		mockExtractor := &mock.SiteExtractor{}
		inner := &mock.ExtractorRegistry{
			GetForLabelFn: func(label string) pricekart.SiteExtractor {
				return mockExtractor
			},
		}
		detector := &mock.SiteDetector{
			DetectFn: func(label, html string) pricekart.Site {
				return pricekart.SiteZepto
			},
		}

		registry := pkslog.NewLoggingRegistry(inner, detector, logger)
		extractor := registry.GetForLabel("zepto-milk.html")

		assert.Equal(t, mockExtractor, extractor)
		output := buf.String()
		assert.Contains(t, output, "site resolution")
		assert.Contains(t, output, "site=Zepto")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs unknown site", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ExtractorRegistry{
			GetForLabelFn: func(label string) pricekart.SiteExtractor {
				return nil
			},
		}
		detector := &mock.SiteDetector{
			DetectFn: func(label, html string) pricekart.Site {
				return pricekart.SiteUnknown
			},
		}

		registry := pkslog.NewLoggingRegistry(inner, detector, logger)
		extractor := registry.GetForLabel("mystery.html")

		assert.Nil(t, extractor)
		assert.Contains(t, buf.String(), "site=(unknown)")
	})

	t.Run("Get and List delegate without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ExtractorRegistry{
			GetFn: func(site pricekart.Site) pricekart.SiteExtractor {
				return nil
			},
			ListFn: func() []pricekart.Site {
				return []pricekart.Site{pricekart.SiteDMart}
			},
		}
		detector := &mock.SiteDetector{
			DetectFn: func(label, html string) pricekart.Site { return pricekart.SiteUnknown },
		}

		registry := pkslog.NewLoggingRegistry(inner, detector, logger)
		assert.Nil(t, registry.Get(pricekart.SiteDMart))
		assert.Equal(t, []pricekart.Site{pricekart.SiteDMart}, registry.List())
		assert.Empty(t, buf.String())
	})
}
