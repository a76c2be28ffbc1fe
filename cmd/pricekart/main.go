package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rmehra/pricekart"
	"github.com/rmehra/pricekart/fs"
	"github.com/rmehra/pricekart/goquery"
	"github.com/rmehra/pricekart/rod"
	pkslog "github.com/rmehra/pricekart/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	Logger *slog.Logger
}

// NewMain returns a new instance of Main with defaults.
// A .env file in the working directory, if present, seeds the environment.
func NewMain() *Main {
	_ = godotenv.Load()
	return &Main{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	detector := goquery.NewDetector()

	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   m.Logger,
		Registry: pkslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), detector, m.Logger),
		Detector: detector,
		NewFetcher: func() (pricekart.Fetcher, error) {
			fetcher, err := rod.NewFetcher()
			if err != nil {
				return nil, err
			}
			return rod.NewLoggingFetcher(fetcher, m.Logger), nil
		},
		NewReportWriter: func(dir string) pricekart.ReportWriter {
			return fs.NewReportWriter(dir)
		},
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pricekart"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pricekart --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}
