package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/myusername/match-report-scraper/internal/config"
	"github.com/myusername/match-report-scraper/internal/store"
	"github.com/myusername/match-report-scraper/internal/utils"
	"github.com/myusername/match-report-scraper/pkg/parser"
	"github.com/myusername/match-report-scraper/pkg/scraper"
)

// processor extracts one report at a time and writes its outputs
type processor struct {
	cfg       config.Config
	extractor *parser.Extractor
	fetcher   *scraper.Fetcher
	store     *store.Store
	logger    *slog.Logger
	print     bool
}

func (p *processor) dir(kind string) string {
	return filepath.Join(p.cfg.OutputDir, kind)
}

// prepareDirs creates the subdirectories for the different file types
func (p *processor) prepareDirs() error {
	for _, dir := range []string{p.dir("pdf"), p.dir("csv"), p.dir("json")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// load reads a local file or downloads a URL, keeping a local copy of downloads
func (p *processor) load(ctx context.Context, src string) ([]byte, error) {
	if !isURL(src) {
		return os.ReadFile(src)
	}

	local := filepath.Join(p.dir("pdf"), scraper.FileNameFromURL(src))
	if data, err := os.ReadFile(local); err == nil {
		p.logger.Info("using existing download", "path", local)
		return data, nil
	}
	if err := p.fetcher.Download(ctx, src, local); err != nil {
		return nil, err
	}
	return os.ReadFile(local)
}

func (p *processor) process(ctx context.Context, src string) error {
	data, err := p.load(ctx, src)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", src, err)
	}

	report, err := p.extractor.ParseDocument(parser.DetectSource(data, p.cfg.MaxPages), data, p.cfg.MaxPages)
	if err != nil {
		return err
	}
	rec := report.Record

	for _, d := range report.Diagnostics {
		p.logger.Debug("diagnostic", "source", src, "kind", d.Kind, "line", d.Line, "rule", d.Rule, "message", d.Message)
	}
	if !report.OK {
		p.logger.Warn("no game number found, record is incomplete", "source", src)
	}

	if p.print {
		utils.DisplayRecord(os.Stdout, rec)
	}

	name := baseName(src)
	if rec.HasGameID() {
		name = "game_" + rec.ID()
	}

	if err := utils.SaveRecordToJSON(rec, filepath.Join(p.dir("json"), name+".json")); err != nil {
		return err
	}
	if err := utils.SaveRosterToCSV(rec, filepath.Join(p.dir("csv"), name+"_roster.csv")); err != nil {
		return err
	}
	if err := utils.SaveTimelineToCSV(rec, filepath.Join(p.dir("csv"), name+"_timeline.csv")); err != nil {
		return err
	}
	p.logger.Info("saved outputs", "source", src, "name", name)

	if p.store != nil && report.OK {
		if err := p.store.Save(ctx, rec); err != nil {
			return err
		}
		p.logger.Info("stored record", "game_id", rec.ID())
	}
	return nil
}
