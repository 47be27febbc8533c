package workbook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/measuretrack/measuretrack/internal/model"
)

// LoadError reports a failed fetch or decode. It is fatal to a load cycle.
type LoadError struct {
	Source string
	Op     string // "fetch", "read", "decode" or "config"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// exportURLFormat is the spreadsheet export endpoint.
const exportURLFormat = "https://docs.google.com/spreadsheets/d/%s/export?format=%s"

// ExportURL returns the export URL for a hosted spreadsheet.
func ExportURL(spreadsheetID, format string) string {
	if format == "" {
		format = "xlsx"
	}
	return fmt.Sprintf(exportURLFormat, url.PathEscape(spreadsheetID), url.QueryEscape(format))
}

// Loader fetches and decodes workbooks.
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader creates a Loader. A nil client means http.DefaultClient.
func NewLoader(client *http.Client, logger *slog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, logger: logger}
}

// Load fetches source (an http(s) URL or a local path) and decodes it.
func (l *Loader) Load(ctx context.Context, source string) (model.Workbook, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return model.Workbook{}, err
	}
	l.logger.Debug("fetched workbook", "source", source, "bytes", len(data))

	wb, err := Decode(bytes.NewReader(data))
	if err != nil {
		return model.Workbook{}, &LoadError{Source: source, Op: "decode", Err: err}
	}
	return wb, nil
}

func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if !isRemote(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, &LoadError{Source: source, Op: "read", Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &LoadError{Source: source, Op: "fetch", Err: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: source, Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: source, Op: "fetch", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: source, Op: "read", Err: err}
	}
	return data, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Decode parses spreadsheet bytes into a Workbook, keeping sheet order.
func Decode(r io.Reader) (model.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return model.Workbook{}, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer f.Close()

	var wb model.Workbook
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return model.Workbook{}, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, model.RawSheet{Name: name, Rows: rows})
	}
	return wb, nil
}
