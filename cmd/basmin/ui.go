// # cmd/basmin/ui.go
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"basmin/internal/minify"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	lastUpdate time.Time
	procedures int
	savings    int
	lastErr    string
}

type updateMsg struct {
	result *minify.Result
	err    error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.lastUpdate = time.Now()
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			break
		}
		m.lastErr = ""
		m.procedures = msg.result.ProcedureCount()
		m.savings = msg.result.TotalSavings

		items := []list.Item{}
		for _, name := range msg.result.Definitions.Names() {
			defs := len(msg.result.Definitions[name])
			calls := len(msg.result.Calls[name])
			saved := msg.result.Mapping.Savings(name) * (defs + calls)
			items = append(items, item{
				title: fmt.Sprintf("%s -> %s", name, msg.result.Mapping[name]),
				desc:  fmt.Sprintf("%d definitions, %d calls, saves %d chars", defs, calls, saved),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d procedures",
		m.lastUpdate.Format("15:04:05"), m.procedures))

	var summary string
	if m.lastErr != "" {
		summary = errStyle.Render(fmt.Sprintf("last run failed: %s", m.lastErr))
	} else {
		summary = savedStyle.Render(fmt.Sprintf("saved %d chars", m.savings))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Procedure Minifier"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Name Mapping"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
