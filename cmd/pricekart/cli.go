package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/rmehra/pricekart"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Registry pricekart.ExtractorRegistry
	Detector pricekart.SiteDetector

	// NewFetcher lazily starts the browser. Only the serve and scrape
	// commands pay the startup cost.
	NewFetcher func() (pricekart.Fetcher, error)

	NewReportWriter func(dir string) pricekart.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve   ServeCmd   `cmd:"" help:"Run the scrape job API server"`
	Scrape  ScrapeCmd  `cmd:"" help:"Scrape all sites once and write a report"`
	Extract ExtractCmd `cmd:"" help:"Extract products from saved HTML snapshots"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string  `default:":8080" env:"PRICEKART_ADDR" help:"Bind address"`
	SnapshotDir   string  `default:"snapshots" env:"PRICEKART_SNAPSHOT_DIR" help:"Snapshot base directory"`
	ReportDir     string  `default:"reports" env:"PRICEKART_REPORT_DIR" help:"Report output directory"`
	RPS           float64 `default:"1" help:"Max requests per second per site"`
	PruneSchedule string  `default:"0 3 * * *" env:"PRICEKART_PRUNE_SCHEDULE" help:"Cron schedule for snapshot pruning"`
	SnapshotTTL   string  `default:"168h" env:"PRICEKART_SNAPSHOT_TTL" help:"Max snapshot age before pruning"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Product     string  `arg:"" help:"Product search query"`
	Location    string  `arg:"" help:"Delivery location or pincode"`
	Timeout     string  `default:"3m" help:"Overall run timeout"`
	RPS         float64 `default:"1" help:"Max requests per second per site"`
	SnapshotDir string  `default:"snapshots" env:"PRICEKART_SNAPSHOT_DIR" help:"Snapshot base directory"`
	Out         string  `short:"o" help:"Also write the report JSON to this directory"`
	NoSnapshots bool    `help:"Skip saving HTML snapshots"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Path     string `arg:"" help:"HTML file or snapshot directory"`
	Product  string `default:"" help:"Product query recorded in the report"`
	Location string `default:"" help:"Location recorded in the report"`
	Label    string `help:"Override the source label for a single file"`
	Out      string `short:"o" help:"Also write the report JSON to this directory"`
}
