package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/measuretrack/measuretrack/internal/ingest"
	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/workbook"
)

// ErrConfigSheetMissing is returned when the workbook has no config sheet.
var ErrConfigSheetMissing = errors.New("config sheet missing")

// Options controls how a workbook is split into config and data sheets.
type Options struct {
	ConfigSheet   string
	SkipSheets    []string
	FallbackColor string
}

// DefaultOptions returns the standard sheet layout.
func DefaultOptions() Options {
	return Options{
		ConfigSheet:   "Config",
		SkipSheets:    []string{"Introduction", "Config"},
		FallbackColor: model.DefaultFallbackColor,
	}
}

// WorkbookLoader fetches and decodes a workbook.
type WorkbookLoader interface {
	Load(ctx context.Context, source string) (model.Workbook, error)
}

// Session runs load cycles. Each cycle produces a fresh Dashboard.
type Session struct {
	loader WorkbookLoader
	opts   Options
	logger *slog.Logger
}

// NewSession creates a Session.
func NewSession(loader WorkbookLoader, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{loader: loader, opts: opts, logger: logger}
}

// Load fetches source and builds a Dashboard from it. Every failure is
// returned as a *workbook.LoadError.
func (s *Session) Load(ctx context.Context, source string) (*Dashboard, error) {
	id := uuid.NewString()
	log := s.logger.With("session", id)
	log.Info("loading workbook", "source", source)

	wb, err := s.loader.Load(ctx, source)
	if err != nil {
		log.Error("load failed", "error", err)
		return nil, err
	}
	log.Debug("workbook decoded", "sheets", wb.Names())

	d, err := Build(wb, s.opts)
	if err != nil {
		log.Error("load failed", "error", err)
		return nil, &workbook.LoadError{Source: source, Op: "config", Err: err}
	}
	d.SessionID = id
	d.Source = source

	for _, diag := range d.Diagnostics {
		log.Warn("config sheet", "row", diag.Row, "field", diag.Field, "problem", diag.Description)
	}
	for _, sh := range d.Sheets {
		if sh.Empty() {
			log.Debug("sheet has no records", "sheet", sh.Name)
		}
	}
	log.Info("workbook loaded",
		"sheets", len(d.Sheets),
		"portfolios", len(d.Lookups.Portfolios),
		"tags", len(d.Lookups.Tags))
	return d, nil
}

// Build derives lookups and normalized data sheets from a decoded workbook.
func Build(wb model.Workbook, opts Options) (*Dashboard, error) {
	cfg, ok := wb.Sheet(opts.ConfigSheet)
	if !ok {
		return nil, fmt.Errorf("%w: no sheet named %q", ErrConfigSheetMissing, opts.ConfigSheet)
	}

	entries := ingest.ReadConfigEntries(cfg)
	d := &Dashboard{
		Lookups:     ingest.BuildLookups(entries, opts.FallbackColor),
		Diagnostics: ingest.Diagnose(entries),
	}

	for _, raw := range wb.Sheets {
		if raw.Name == opts.ConfigSheet || slices.Contains(opts.SkipSheets, raw.Name) {
			continue
		}
		d.Sheets = append(d.Sheets, ingest.NormalizeSheet(raw))
	}
	return d, nil
}
