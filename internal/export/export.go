package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/measuretrack/measuretrack/internal/columns"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/model"
)

// Table is one exported section: a sheet's rows as plain text.
type Table struct {
	Sheet   string
	Columns []columns.Column
	Header  []string
	Rows    [][]string
}

// Document is the full export across sheets.
type Document struct {
	Title    string
	Filtered bool
	Filters  string // human-readable filter summary when Filtered
	Tables   []Table
}

// ColumnFunc derives the columns of a sheet.
type ColumnFunc func(model.Sheet) []columns.Column

// Project builds the export document. When filtered is set each sheet's
// records pass through the filter engine first. Sheets left with no rows
// are skipped; columns are derived per sheet since field sets differ.
func Project(title string, sheets []model.Sheet, derive ColumnFunc, state filter.State, filtered bool) Document {
	doc := Document{Title: title, Filtered: filtered}
	if filtered {
		doc.Filters = state.String()
	}

	for _, sheet := range sheets {
		records := sheet.Records
		if filtered {
			records = filter.Apply(records, state)
		}
		if len(records) == 0 {
			continue
		}

		cols := derive(sheet)
		t := Table{Sheet: sheet.Name, Columns: cols, Header: make([]string, len(cols))}
		for i, c := range cols {
			t.Header[i] = c.Label
		}
		for _, r := range records {
			row := make([]string, len(cols))
			for i, c := range cols {
				row[i] = c.Text(r)
			}
			t.Rows = append(t.Rows, row)
		}
		doc.Tables = append(doc.Tables, t)
	}
	return doc
}

// Filename returns the output file name for a document variant.
func Filename(base string, filtered bool, ext string) string {
	if base == "" {
		base = "measures"
	}
	if filtered {
		base += "-filtered"
	}
	return base + ext
}

// Renderer writes a Document in one output format.
type Renderer interface {
	Render(w io.Writer, doc Document) error
	Format() string
	Extension() string
}

// Registry holds renderers by format name.
type Registry struct {
	renderers map[string]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer. Panics on duplicate format.
func (r *Registry) Register(rd Renderer) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.renderers[key]; ok {
		panic("duplicate export format: " + key)
	}
	r.renderers[key] = rd
}

// Get returns the renderer for format, or nil.
func (r *Registry) Get(format string) Renderer {
	return r.renderers[strings.ToLower(format)]
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.renderers))
	for k := range r.renderers {
		out = append(out, k)
	}
	return out
}

// DefaultRegistry returns a registry with all built-in renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PDFRenderer{})
	r.Register(&XLSXRenderer{})
	r.Register(&MarkdownRenderer{})
	return r
}

// WriteFile renders doc into dir and returns the written path.
func WriteFile(dir, base string, rd Renderer, doc Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, Filename(base, doc.Filtered, rd.Extension()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := rd.Render(f, doc); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering %s: %w", rd.Format(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
