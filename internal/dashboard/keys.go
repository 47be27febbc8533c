package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Toggle     key.Binding
	Search     key.Binding
	Portfolios key.Binding
	Tags       key.Binding
	Clear      key.Binding
	Export     key.Binding
	ExportView key.Binding
	Reload     key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next sheet")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev sheet")),
		Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/select")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Portfolios: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "portfolios")),
		Tags:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Export:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export all")),
		ExportView: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export filtered")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Toggle, k.Search, k.Portfolios, k.Tags, k.Clear, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab, k.Toggle},
		{k.Search, k.Portfolios, k.Tags, k.Clear},
		{k.Export, k.ExportView, k.Reload, k.Back, k.Quit},
	}
}
