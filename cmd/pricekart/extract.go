package main

import (
	"fmt"
	"os"

	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/aggregate"
)

// Run executes the extract command: offline extraction from saved HTML.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", c.Path, err)
	}

	aggregator := &aggregate.Aggregator{
		Registry: deps.Registry,
		Detector: deps.Detector,
		Logger:   deps.Logger,
	}

	var results []pricekart.SiteResult
	if info.IsDir() {
		results, err = aggregator.ExtractDir(deps.Ctx, c.Path)
	} else {
		var result *pricekart.SiteResult
		result, err = aggregator.ExtractFile(c.Path, c.Label)
		if result != nil {
			results = []pricekart.SiteResult{*result}
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pricekart.ErrorMessage(err))
		return err
	}

	report := pricekart.NewReport(c.Product, c.Location, results, len(results))

	if c.Out != "" {
		path, err := deps.NewReportWriter(c.Out).WriteReport(deps.Ctx, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "report written to %s\n", path)
	}

	return printReport(deps.Stdout, report)
}
