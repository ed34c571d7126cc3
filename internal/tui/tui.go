// Package tui draws a session.Session in the terminal and feeds it key presses. All state lives in the session; this package only decodes keys and renders.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wmeints/lazydiff/internal/session"
	"github.com/wmeints/lazydiff/internal/simplelogger"
)

// chromeHeight is the number of rows taken by everything except the rows of the diff or browser pane: the files header box, the pane's border, and the status box.
const chromeHeight = 8

// Run shows s in the alternate screen until the user quits.
func Run(s *session.Session) error {
	p := tea.NewProgram(newModel(s), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		simplelogger.Log("tui: program exited with error: %v", err)
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

type model struct {
	s    *session.Session
	keys keyMap
	help help.Model

	width  int
	height int
}

func newModel(s *session.Session) model {
	return model{
		s:    s,
		keys: defaultKeyMap,
		help: help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width - 2
		m.s.SetViewportHeight(viewportHeight(msg.Height))

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		in, ok := m.keys.input(msg)
		if !ok {
			m.s.ClearStatus()
			return m, nil
		}
		if m.s.Handle(in) {
			return m, tea.Quit
		}
	}
	return m, nil
}

// viewportHeight is the number of diff or browser rows that fit in a terminal of the given height.
func viewportHeight(termHeight int) int {
	return max(termHeight-chromeHeight, 1)
}
