package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wmeints/lazydiff/internal/session"
)

type keyMap struct {
	Quit            key.Binding
	ForceQuit       key.Binding
	SelectSource    key.Binding
	SelectTarget    key.Binding
	ToggleSelection key.Binding
	ToggleAnchor    key.Binding
	Copy            key.Binding
	Export          key.Binding
	Up              key.Binding
	Down            key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
}

var defaultKeyMap = keyMap{
	Quit:            key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit:       key.NewBinding(key.WithKeys("ctrl+c")),
	SelectSource:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select source")),
	SelectTarget:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "select target")),
	ToggleSelection: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "selection mode")),
	ToggleAnchor:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "mark start/end")),
	Copy:            key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Export:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
	Up:              key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:            key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Confirm:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// input maps msg to the session input it triggers. In the browser, q acts as cancel.
func (k keyMap) input(msg tea.KeyMsg) (session.Input, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return session.InputQuit, true
	case key.Matches(msg, k.SelectSource):
		return session.InputSelectSource, true
	case key.Matches(msg, k.SelectTarget):
		return session.InputSelectTarget, true
	case key.Matches(msg, k.ToggleSelection):
		return session.InputToggleSelection, true
	case key.Matches(msg, k.ToggleAnchor):
		return session.InputToggleAnchor, true
	case key.Matches(msg, k.Copy):
		return session.InputCopy, true
	case key.Matches(msg, k.Export):
		return session.InputExport, true
	case key.Matches(msg, k.Up):
		return session.InputUp, true
	case key.Matches(msg, k.Down):
		return session.InputDown, true
	case key.Matches(msg, k.Confirm):
		return session.InputConfirm, true
	case key.Matches(msg, k.Cancel):
		return session.InputCancel, true
	}
	return 0, false
}

// modeHelp is the help.KeyMap for one mode.
type modeHelp []key.Binding

func (h modeHelp) ShortHelp() []key.Binding  { return h }
func (h modeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k keyMap) help(mode session.Mode) modeHelp {
	switch mode {
	case session.ModeSelectingSource, session.ModeSelectingTarget:
		return modeHelp{k.Up, k.Down, k.Confirm, k.Cancel}
	case session.ModeSelection:
		return modeHelp{k.Up, k.Down, k.ToggleAnchor, k.Copy, k.Export, k.ToggleSelection, k.Quit}
	default:
		return modeHelp{k.Quit, k.SelectSource, k.SelectTarget, k.ToggleSelection, k.Copy, k.Export, k.Up, k.Down}
	}
}
