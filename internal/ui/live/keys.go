package live

import (
	"github.com/charmbracelet/bubbles/key"

	"examctl/internal/lifecycle"
)

// keyMap lists the bindings of the exam UI.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Choose     key.Binding
	Clear      key.Binding
	Start      key.Binding
	Submit     key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Reload     key.Binding
	Filter     key.Binding
	ExportJSON key.Binding
	ExportHTML key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Choose:     key.NewBinding(key.WithKeys("a", "b", "c", "d", "e", "1", "2", "3", "4", "5"), key.WithHelp("a-e", "answer")),
		Clear:      key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear")),
		Start:      key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "start")),
		Submit:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		ExportJSON: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "export json")),
		ExportHTML: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "export html")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindingsFor returns the bindings that apply to the given snapshot.
func (k keyMap) bindingsFor(snap lifecycle.Snapshot) []key.Binding {
	switch snap.View {
	case lifecycle.ViewError:
		return []key.Binding{k.Reload, k.Quit}
	case lifecycle.ViewStart:
		return []key.Binding{k.Start, k.Quit}
	case lifecycle.ViewActive:
		if snap.Confirming {
			return []key.Binding{k.Confirm, k.Cancel}
		}
		bindings := []key.Binding{k.Up, k.Down, k.Choose, k.Clear}
		if snap.CanSubmit {
			bindings = append(bindings, k.Submit)
		}
		return append(bindings, k.Help, k.Quit)
	case lifecycle.ViewResult:
		return []key.Binding{k.Up, k.Down, k.Filter, k.ExportJSON, k.ExportHTML, k.Quit}
	default:
		return []key.Binding{k.Quit}
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Choose, k.Clear, k.Submit},
		{k.Filter, k.ExportJSON, k.ExportHTML},
		{k.Help, k.Quit},
	}
}
