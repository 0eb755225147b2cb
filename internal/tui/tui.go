// Package tui wires the pager widget into a runnable application model.
package tui

import (
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/recyclerview/recycler/internal/feed"
	"github.com/recyclerview/recycler/internal/tui/components/pager"
	"github.com/recyclerview/recycler/internal/window"
)

type Model struct {
	pager *pager.Model[feed.Item]
	quit  key.Binding
}

func New(cfg window.Config[feed.Item], opts ...pager.Option) (*Model, error) {
	p, err := pager.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Model{
		pager: p,
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}, nil
}

func (m *Model) Init() tea.Cmd {
	return m.pager.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(msg, m.quit) {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return m, cmd
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.pager.View())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
