// Package main is the entry point for the match-report-scraper application
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/myusername/match-report-scraper/internal/config"
	"github.com/myusername/match-report-scraper/internal/store"
	"github.com/myusername/match-report-scraper/pkg/parser"
	"github.com/myusername/match-report-scraper/pkg/scraper"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("report-scraper", flag.ContinueOnError)
	versionFlag := fs.Bool("version", false, "Print version information and exit")
	configFlag := fs.String("config", "", "YAML config file (markers, limits, service settings)")
	outputFlag := fs.String("output", "", "Output directory for CSV and JSON files (default: current directory)")
	pagesFlag := fs.Int("pages", -1, "Number of leading pages to read per document (0 = all)")
	dbFlag := fs.String("db", "", "SQLite database to store extracted records in")
	logLevelFlag := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	indexFlag := fs.String("index", "", "URL of an index page listing report PDFs")
	filterFlag := fs.String("filter", "", "Only follow index links containing this text")
	serveFlag := fs.Bool("serve", false, "Run the upload service instead of parsing files")
	addrFlag := fs.String("addr", "", "Listen address of the upload service")
	quietFlag := fs.Bool("quiet", false, "Do not print extracted records")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Printf("match-report-scraper version %s\n", version)
		return 0
	}

	cfg := config.DefaultConfig()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	if *outputFlag != "" {
		cfg.OutputDir = *outputFlag
	}
	if *pagesFlag >= 0 {
		cfg.MaxPages = *pagesFlag
	}
	if *dbFlag != "" {
		cfg.DatabasePath = *dbFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger := config.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("match report scraper starting", "version", version)

	extractor := parser.NewExtractor(parser.WithMarkers(cfg.Markers), parser.WithLogger(logger))

	var db *store.Store
	if cfg.DatabasePath != "" {
		var err error
		db, err = store.Open(cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
			return 1
		}
		defer db.Close()
		logger.Info("storing records", "path", cfg.DatabasePath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveFlag {
		if err := serve(ctx, cfg, extractor, db, logger); err != nil {
			logger.Error("server error", "error", err)
			return 1
		}
		return 0
	}

	sources := fs.Args()
	fetcher := scraper.NewFetcher(cfg.FetchTimeout, logger)
	if *indexFlag != "" {
		links, err := discoverReports(ctx, fetcher, *indexFlag, *filterFlag)
		if err != nil {
			logger.Error("failed to read index page", "url", *indexFlag, "error", err)
			return 1
		}
		sources = append(sources, links...)
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: report-scraper [flags] <file or URL>...")
		fs.PrintDefaults()
		return 2
	}

	p := &processor{
		cfg:       cfg,
		extractor: extractor,
		fetcher:   fetcher,
		store:     db,
		logger:    logger,
		print:     !*quietFlag,
	}
	if err := p.prepareDirs(); err != nil {
		logger.Error("failed to create output directories", "error", err)
		return 1
	}

	failed := 0
	for i, src := range sources {
		logger.Info("processing report", "n", i+1, "of", len(sources), "source", src)
		if err := p.process(ctx, src); err != nil {
			logger.Error("failed to process report", "source", src, "error", err)
			failed++
		}
	}

	logger.Info("scraping complete", "reports", len(sources), "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// discoverReports lists the absolute URLs of the report PDFs linked from an index page
func discoverReports(ctx context.Context, f *scraper.Fetcher, indexURL, filter string) ([]string, error) {
	page, err := f.Fetch(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	links, err := scraper.ExtractReportLinks(page, filter)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(links))
	for _, link := range links {
		abs, err := scraper.ResolveRelativeURL(indexURL, link)
		if err != nil {
			slog.Warn("skipping link", "link", link, "error", err)
			continue
		}
		urls = append(urls, abs)
	}
	slog.Info("found report links", "url", indexURL, "count", len(urls))
	return urls, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func baseName(src string) string {
	name := filepath.Base(src)
	if isURL(src) {
		name = scraper.FileNameFromURL(src)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
