// Command specstitch rebuilds a complete OpenAPI definition from a
// ReadMe-hosted documentation site by crawling its reference pages and
// merging the per-page definition fragments.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/specstitch"
	"github.com/fwojciec/specstitch/crawl"
	ssfs "github.com/fwojciec/specstitch/fs"
	ssgoquery "github.com/fwojciec/specstitch/goquery"
	sshttp "github.com/fwojciec/specstitch/http"
	sslog "github.com/fwojciec/specstitch/slog"
	"github.com/fwojciec/specstitch/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL      string        `arg:"" required:"" help:"Start URL of the API reference (e.g. https://docs.example.com/reference)"`
	Out      string        `short:"o" default:"out/oas_definition.json" help:"Output path for the merged definition"`
	Cache    string        `default:"out/cache.db" help:"SQLite cache database path"`
	Payloads string        `default:"out/payloads" help:"Directory for per-page payload blobs"`
	Timeout  time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Rate     float64       `default:"1" help:"Fetch rate limit in requests per second"`
	Verbose  bool          `short:"v" help:"Enable debug logging"`
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("specstitch"),
		kong.Description("Rebuild a complete OpenAPI definition from a documentation site"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the fetch stack: HTTP fetcher → extractor → sqlite cache →
	// logging. The cache makes per-URL fetches idempotent, which the
	// crawler's single-pass merge order depends on.
	fetcher := sshttp.NewFetcher(
		sshttp.WithTimeout(cli.Timeout),
		sshttp.WithRequestsPerSecond(cli.Rate),
	)
	defer fetcher.Close()

	db := sqlite.NewDB(cli.Cache)
	if err := db.Open(); err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer db.Close()

	loader := &crawl.PropsLoader{
		Fetcher:   sslog.NewLoggingFetcher(fetcher, logger),
		Extractor: ssgoquery.NewExtractor(),
	}
	props := sslog.NewLoggingPropsService(sqlite.NewPropsService(db, loader), logger)

	crawler := &crawl.Crawler{
		Props:  props,
		Writer: ssfs.NewWriter(cli.Out, cli.Payloads),
	}

	runs := sqlite.NewRunService(db)
	run := &specstitch.Run{StartURL: cli.URL}
	if err := runs.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	result, err := crawler.Run(ctx, cli.URL, progressPrinter(stdout))
	if err != nil {
		return err
	}

	if err := runs.FinishRun(ctx, run.ID, result.Used, result.Skipped, result.Failed); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	fmt.Fprintf(stdout, "Done: %d merged, %d skipped, %d failed\n",
		result.Used, result.Skipped, result.Failed)
	fmt.Fprintf(stdout, "Wrote %s\n", cli.Out)

	return nil
}

// progressPrinter returns a ProgressFunc that prints one line per page.
func progressPrinter(stdout io.Writer) crawl.ProgressFunc {
	return func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(stdout, "Crawling %d reference pages\n", e.Total)
		case crawl.ProgressMerged:
			fmt.Fprintf(stdout, "  [%d/%d] merged %s (%s)\n", e.Completed, e.Total, e.Title, e.Slug)
		case crawl.ProgressSkipped:
			fmt.Fprintf(stdout, "  [%d/%d] skipped %s (%s)\n", e.Completed, e.Total, e.Title, e.Slug)
		case crawl.ProgressFailed:
			fmt.Fprintf(stdout, "  [%d/%d] failed %s (%s): %v\n", e.Completed, e.Total, e.Title, e.Slug, e.Err)
		}
	}
}
