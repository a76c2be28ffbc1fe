package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rmehra/pricekart"
)

// Ensure ReportWriter implements pricekart.ReportWriter at compile time.
var _ pricekart.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes extraction reports as timestamped JSON files.
type ReportWriter struct {
	baseDir string
}

// NewReportWriter creates a ReportWriter that writes to the given directory.
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{baseDir: baseDir}
}

// WriteReport persists the report and returns the path it was written to.
func (w *ReportWriter) WriteReport(ctx context.Context, report *pricekart.ExtractionReport) (string, error) {
	if report == nil {
		return "", pricekart.Errorf(pricekart.EINVALID, "report required")
	}

	ts := report.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	name := reportFilename(report.Product, ts)
	fullPath := filepath.Join(w.baseDir, name)

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

func reportFilename(product string, ts time.Time) string {
	slug := SafeFilename(strings.ToLower(strings.Join(strings.Fields(product), "-")))
	if slug == "" {
		slug = "report"
	}
	return slug + "-" + ts.UTC().Format("20060102-150405") + ".json"
}
