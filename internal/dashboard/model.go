// Package dashboard is the interactive terminal view over a loaded
// workbook. It holds presentation state only; every visible list is
// recomputed from the pipeline on each filter change.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/measuretrack/measuretrack/internal/columns"
	"github.com/measuretrack/measuretrack/internal/filter"
	"github.com/measuretrack/measuretrack/internal/model"
	"github.com/measuretrack/measuretrack/internal/pipeline"
)

// LoadFunc runs one load cycle.
type LoadFunc func(ctx context.Context) (*pipeline.Dashboard, error)

// ExportFunc writes an export and returns the written path.
type ExportFunc func(d *pipeline.Dashboard, state filter.State, filtered bool) (string, error)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modePicker
)

type loadedMsg struct {
	dash *pipeline.Dashboard
	err  error
}

type exportedMsg struct {
	path string
	err  error
}

// maxRecordLines caps the terminal lines one record may take.
const maxRecordLines = 4

// line is one entry of the browse list: a group header when record is -1.
// height is the number of terminal lines it occupies.
type line struct {
	group  int
	record int
	height int
}

type pickerItem struct {
	Label  string
	Color  string
	Action filter.Action
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	load   LoadFunc
	export ExportFunc
	logger *slog.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	loading bool
	err     error
	dash    *pipeline.Dashboard
	state   filter.State
	tab     int
	view    pipeline.View
	counts  []pipeline.SheetCount

	collapsed map[string]bool
	cursor    int
	offset    int

	mode        mode
	pickerTitle string
	picker      []pickerItem
	pickerIdx   int

	status        string
	width, height int
}

// New creates a dashboard that loads through load. export may be nil, in
// which case the export keys report that exporting is unavailable.
func New(load LoadFunc, export ExportFunc, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	search := textinput.New()
	search.Placeholder = "search all fields"
	search.Prompt = "/ "

	return Model{
		load:      load,
		export:    export,
		logger:    logger,
		keys:      defaultKeys(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		search:    search,
		loading:   true,
		collapsed: make(map[string]bool),
	}
}

// Run starts the dashboard on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		d, err := load(context.Background())
		return loadedMsg{dash: d, err: err}
	}
}

func (m Model) exportCmd(filtered bool) tea.Cmd {
	export, d, state := m.export, m.dash, m.state
	return func() tea.Msg {
		path, err := export(d, state, filtered)
		return exportedMsg{path: path, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-4, 10)
		m.scroll()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.dash = msg.dash
		if m.tab >= len(m.dash.Sheets) {
			m.tab = 0
		}
		m.refresh()
		m.status = fmt.Sprintf("loaded %d sheets", len(m.dash.Sheets))
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
			m.logger.Error("export failed", "error", msg.err)
		} else {
			m.status = "exported to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}
	if m.err != nil {
		switch {
		case key.Matches(msg, m.keys.Reload):
			return m.reload()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modePicker:
		return m.handlePickerKey(msg), nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.activate()
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.search.SetValue(m.state.Query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Portfolios):
		m.openPicker("Portfolios", m.optionItems(filter.TogglePortfolio))
	case key.Matches(msg, m.keys.Tags):
		m.openPicker("Tags", m.optionItems(filter.ToggleTag))
	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.apply(filter.Action{Target: filter.Clear})
	case key.Matches(msg, m.keys.Export):
		return m.startExport(false)
	case key.Matches(msg, m.keys.ExportView):
		return m.startExport(true)
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.apply(filter.Action{Target: filter.SetQuery, Value: m.search.Value()})
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.mode = modeBrowse
		m.picker = nil
	case key.Matches(msg, m.keys.Up):
		if m.pickerIdx > 0 {
			m.pickerIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerIdx < len(m.picker)-1 {
			m.pickerIdx++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.pickerIdx < len(m.picker) {
			m.apply(m.picker[m.pickerIdx].Action)
		}
	}
	return m
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) startExport(filtered bool) (tea.Model, tea.Cmd) {
	if m.export == nil {
		m.status = "export is not configured"
		return m, nil
	}
	m.status = "exporting…"
	return m, m.exportCmd(filtered)
}

// apply hands an action to the filter state and rebuilds the view.
func (m *Model) apply(a filter.Action) {
	m.state = m.state.Handle(a)
	m.logger.Debug("filter changed", "filters", m.state.String())
	m.refresh()
}

func (m *Model) refresh() {
	if m.dash == nil {
		return
	}
	names := m.dash.SheetNames()
	if len(names) == 0 {
		m.view = pipeline.View{}
		m.counts = nil
		return
	}
	m.view = m.dash.View(names[m.tab], m.state)
	m.counts = m.dash.Counts(m.state)
	m.cursor = min(m.cursor, max(len(m.lines())-1, 0))
	m.scroll()
}

func (m *Model) switchTab(delta int) {
	if m.dash == nil || len(m.dash.Sheets) == 0 {
		return
	}
	n := len(m.dash.Sheets)
	m.tab = (m.tab + delta + n) % n
	m.cursor, m.offset = 0, 0
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.lines())
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.scroll()
}

// activate toggles the group under the cursor or opens the chip picker for
// the record under it.
func (m *Model) activate() {
	lines := m.lines()
	if m.cursor >= len(lines) {
		return
	}
	l := lines[m.cursor]
	g := m.view.Groups[l.group]
	if l.record < 0 {
		k := m.groupID(g)
		m.collapsed[k] = !m.collapsed[k]
		return
	}

	items := m.chipItems(g.Records[l.record])
	if len(items) == 0 {
		m.status = "no portfolio or tag values on this row"
		return
	}
	m.openPicker("Filter by this row", items)
}

func (m *Model) openPicker(title string, items []pickerItem) {
	m.mode = modePicker
	m.pickerTitle = title
	m.picker = items
	m.pickerIdx = 0
}

func (m Model) optionItems(target filter.Target) []pickerItem {
	if m.dash == nil {
		return nil
	}
	names, palette := m.dash.Lookups.Portfolios, m.dash.Lookups.PortfolioColors
	if target == filter.ToggleTag {
		names, palette = m.dash.Lookups.Tags, m.dash.Lookups.TagColors
	}
	items := make([]pickerItem, len(names))
	for i, n := range names {
		items[i] = pickerItem{Label: n, Color: palette.Color(n), Action: filter.Action{Target: target, Value: n}}
	}
	return items
}

func (m Model) chipItems(r model.Record) []pickerItem {
	var items []pickerItem
	for _, c := range m.view.Columns {
		if c.Kind != columns.Chips {
			continue
		}
		for _, ch := range c.Render(r, m.state).Chips {
			items = append(items, pickerItem{Label: c.Label + ": " + ch.Label, Color: ch.Color, Action: ch.Action})
		}
	}
	return items
}

func (m Model) selected(a filter.Action) bool {
	switch a.Target {
	case filter.TogglePortfolio:
		return m.state.HasPortfolio(a.Value)
	case filter.ToggleTag:
		return m.state.HasTag(a.Value)
	}
	return false
}

func (m Model) groupID(g model.Group) string {
	return m.view.Sheet + "\x00" + g.Key
}

func (m Model) lines() []line {
	var out []line
	for gi, g := range m.view.Groups {
		out = append(out, line{group: gi, record: -1, height: 1})
		if m.collapsed[m.groupID(g)] {
			continue
		}
		for ri, r := range g.Records {
			out = append(out, line{group: gi, record: ri, height: m.recordHeight(r)})
		}
	}
	return out
}

// recordHeight converts the row-height hint of a record into terminal lines.
func (m Model) recordHeight(r model.Record) int {
	h, ok := m.view.RowHeights[r.ID]
	if !ok {
		return 1
	}
	return min(max((h-columns.BaseHeight)/columns.LineHeight, 1), maxRecordLines)
}

// columnWidths starts from each column's width hint and, when the terminal
// is too narrow, shrinks columns toward their minimum width from the last
// one backwards.
func (m Model) columnWidths() []int {
	widths := make([]int, len(m.view.Columns))
	total := len(noMark) + max(len(widths)-1, 0)
	for i, c := range m.view.Columns {
		widths[i] = c.Width
		total += c.Width
	}
	if m.width == 0 {
		return widths
	}
	over := total - m.width
	for i := len(widths) - 1; i >= 0 && over > 0; i-- {
		cut := min(over, widths[i]-m.view.Columns[i].MinWidth)
		if cut > 0 {
			widths[i] -= cut
			over -= cut
		}
	}
	return widths
}

func (m Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	return max(m.height-8, 3)
}

// scroll moves the window so the entry under the cursor is fully visible.
func (m *Model) scroll() {
	lines := m.lines()
	if len(lines) == 0 {
		m.offset = 0
		return
	}
	cursor := min(m.cursor, len(lines)-1)
	if cursor < m.offset {
		m.offset = cursor
	}
	for m.offset < cursor && span(lines[m.offset:cursor+1]) > m.bodyHeight() {
		m.offset++
	}
}

func span(lines []line) int {
	n := 0
	for _, l := range lines {
		n += l.height
	}
	return n
}
