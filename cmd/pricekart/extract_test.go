package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmehra/pricekart"
	main "github.com/rmehra/pricekart/cmd/pricekart"
	"github.com/rmehra/pricekart/goquery"
	"github.com/rmehra/pricekart/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dmartSnapshot = `<html><body>
<div class="vertical-card_card__1a">
	<div class="vertical-card_title__2b">Amul Taaza Toned Milk 500ml</div>
	<div class="vertical-card_price__3c"><span class="vertical-card_amount__4d">28</span></div>
</div>
</body></html>`

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   discardLogger(),
		Registry: goquery.NewDefaultRegistry(),
		Detector: goquery.NewDetector(),
		NewReportWriter: func(dir string) pricekart.ReportWriter {
			return &mock.ReportWriter{
				WriteReportFn: func(ctx context.Context, report *pricekart.ExtractionReport) (string, error) {
					return filepath.Join(dir, "report.json"), nil
				},
			}
		},
	}
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts a single file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "dmart-milk.html")
		require.NoError(t, os.WriteFile(path, []byte(dmartSnapshot), 0o644))

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ExtractCmd{Path: path, Product: "milk", Location: "Mumbai"}
		require.NoError(t, cmd.Run(testDeps(stdout, stderr)))

		var report pricekart.ExtractionReport
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, "milk", report.Product)
		require.Len(t, report.Data, 1)
		assert.Equal(t, pricekart.SiteDMart, report.Data[0].Website)
		require.Len(t, report.Data[0].Products, 1)
		assert.Equal(t, 28.0, *report.Data[0].Products[0].Price)
	})

	t.Run("extracts a snapshot directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dmart-milk.html"), []byte(dmartSnapshot), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mystery.html"), []byte("<html></html>"), 0o644))

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ExtractCmd{Path: dir, Product: "milk", Location: "Mumbai"}
		require.NoError(t, cmd.Run(testDeps(stdout, stderr)))

		var report pricekart.ExtractionReport
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		require.Len(t, report.Data, 1)
		assert.Equal(t, 1, report.Summary.TotalWebsites)
		assert.Equal(t, 1, report.Summary.Successful)
	})

	t.Run("missing path fails", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		cmd := &main.ExtractCmd{Path: filepath.Join(t.TempDir(), "absent")}
		assert.Error(t, cmd.Run(testDeps(stdout, stderr)))
	})
}
