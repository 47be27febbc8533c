package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/measuretrack/measuretrack/internal/buildinfo"
	"github.com/measuretrack/measuretrack/internal/config"
	"github.com/measuretrack/measuretrack/internal/logging"
	"github.com/measuretrack/measuretrack/internal/pipeline"
	"github.com/measuretrack/measuretrack/internal/workbook"
)

const fetchTimeout = 60 * time.Second

// errNoSource is returned when neither the config nor --source names a workbook.
var errNoSource = errors.New("no workbook source: set source.url or source.spreadsheet_id in " +
	config.FileName + ", or pass --source")

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	configPath string
	source     string
	logLevel   string
	logFormat  string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "measuretrack",
		Short:   "Browse, filter and export a measures-tracking workbook",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.FileName+")")
	flags.StringVar(&opts.source, "source", "", "workbook export URL or local .xlsx path")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text, json")

	rootCmd.AddCommand(
		newInitCommand(),
		newSheetsCommand(opts),
		newOptionsCommand(opts),
		newShowCommand(opts),
		newExportCommand(opts),
		newDashboardCommand(opts),
	)

	return rootCmd
}

// setup loads configuration, applies flag overrides and builds the logger.
// Logs go to logOut.
func (o *rootOptions) setup(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.source != "" {
		cfg.Source.URL = o.source
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newSession(cfg *config.Config, logger *slog.Logger) *pipeline.Session {
	loader := workbook.NewLoader(&http.Client{Timeout: fetchTimeout}, logger)
	return pipeline.NewSession(loader, pipeline.Options{
		ConfigSheet:   cfg.Sheets.Config,
		SkipSheets:    cfg.Sheets.Skip,
		FallbackColor: cfg.FallbackColor(),
	}, logger)
}

// loadDashboard runs one load cycle against the configured source.
func loadDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Dashboard, error) {
	source := cfg.SourceLocation()
	if source == "" {
		return nil, errNoSource
	}
	d, err := newSession(cfg, logger).Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("loading workbook: %w", err)
	}
	return d, nil
}

// addFilterFlags registers the filter flags shared by show and export.
func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	cmd.Flags().StringSliceVar(&f.portfolios, "portfolio", nil, "keep records in any of these portfolios (repeatable, comma separated)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "keep records with any of these tags (repeatable, comma separated)")
	cmd.Flags().StringVar(&f.query, "query", "", "keep records containing this text in any field")
}

type filterFlags struct {
	portfolios []string
	tags       []string
	query      string
}

func (f filterFlags) set() bool {
	return len(f.portfolios) > 0 || len(f.tags) > 0 || f.query != ""
}
