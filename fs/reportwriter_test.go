package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("writes timestamped JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewReportWriter(dir)

		report := pricekart.NewReport("amul milk", "Mumbai", []pricekart.SiteResult{
			{
				Website:  pricekart.SiteDMart,
				Products: []pricekart.Product{{Name: "Amul Taaza 500ml", Price: pricekart.Amount(28), Website: pricekart.SiteDMart}},
			},
		}, 5)
		report.Timestamp = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		path, err := w.WriteReport(context.Background(), report)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "amul-milk-20260801-120000.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded pricekart.ExtractionReport
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "amul milk", decoded.Product)
		assert.Equal(t, 5, decoded.Summary.TotalWebsites)
		assert.Equal(t, 1, decoded.Summary.Successful)
		require.Len(t, decoded.Data, 1)
		assert.Equal(t, 28.0, *decoded.Data[0].Products[0].Price)
	})

	t.Run("creates the directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "reports")
		w := fs.NewReportWriter(dir)

		report := pricekart.NewReport("milk", "Pune", nil, 5)
		path, err := w.WriteReport(context.Background(), report)
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("rejects nil reports", func(t *testing.T) {
		t.Parallel()

		w := fs.NewReportWriter(t.TempDir())
		_, err := w.WriteReport(context.Background(), nil)
		assert.Equal(t, pricekart.EINVALID, pricekart.ErrorCode(err))
	})
}
