package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/shutterflow/internal/cli/formatter"
	"github.com/alexanderramin/shutterflow/internal/compliance"
	"github.com/alexanderramin/shutterflow/internal/store"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Quit   key.Binding
}

var browserKeys = browserKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
	Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// searchFunc runs one shutter search; the browser calls it on every edit.
type searchFunc func(query string) []store.SearchResult

// browserModel is an incremental shutter search: a query line above a
// result list, with the selected shutter expanded on enter.
type browserModel struct {
	search  searchFunc
	input   textinput.Model
	query   string
	results []store.SearchResult
	cursor  int
	detail  bool
	width   int
}

func newBrowserModel(search searchFunc, initial string) browserModel {
	ti := textinput.New()
	ti.Prompt = "search › "
	ti.Placeholder = "shutter, zone, building, city…"
	ti.CharLimit = 120
	ti.SetValue(initial)
	ti.Focus()

	m := browserModel{search: search, input: ti, width: 80}
	m.refresh()
	return m
}

func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) refresh() {
	q := m.input.Value()
	if q == m.query && m.results != nil {
		return
	}
	m.query = q
	m.results = m.search(q)
	if m.results == nil {
		m.results = []store.SearchResult{}
	}
	m.cursor = 0
	m.detail = false
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browserKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.detail = false
			}
			return m, nil
		case key.Matches(msg, browserKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.detail = false
			}
			return m, nil
		case key.Matches(msg, browserKeys.Detail):
			if len(m.results) > 0 {
				m.detail = !m.detail
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

func (m browserModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if strings.TrimSpace(m.query) == "" {
		b.WriteString(formatter.Dim("Type to search shutters."))
		b.WriteString("\n")
	} else if len(m.results) == 0 {
		b.WriteString(formatter.Dim("No matching shutters."))
		b.WriteString("\n")
	}

	for i, r := range m.results {
		res := compliance.Calculate(r.Shutter.ReferenceFlow, r.Shutter.MeasuredFlow)
		marker := "  "
		name := r.Shutter.Name
		if i == m.cursor {
			marker = formatter.StyleHeader.Render("› ")
			name = formatter.Bold(name)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", marker, name,
			formatter.Dim(fmt.Sprintf("%s › %s › %s", r.Project.Name, r.Building.Name, r.Zone.Name)),
			formatter.StatusStyle(res.Status).Render(compliance.FormatDeviation(res.Deviation)))
	}

	if m.detail && m.cursor < len(m.results) {
		b.WriteString("\n")
		b.WriteString(formatter.FormatShutter(m.results[m.cursor]))
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("%d result(s) · ↑/↓ move · enter details · esc quit", len(m.results))))
	return b.String()
}
