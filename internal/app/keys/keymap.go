// Package keys maps key presses to dashboard intents.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap variants.
const (
	VariantPanels = "panels"
	VariantViews  = "views"
)

// KeyMap holds every binding of the dashboard. The same bindings drive
// dispatch, the footer hints and the help screen.
type KeyMap struct {
	Variant string

	Up              key.Binding
	Down            key.Binding
	Left            key.Binding
	Right           key.Binding
	Enter           key.Binding
	FocusProjects   key.Binding
	FocusMain       key.Binding
	FocusDetails    key.Binding
	ViewOperational key.Binding
	ViewPlanning    key.Binding
	CycleView       key.Binding
	Refresh         key.Binding
	OpenLink        key.Binding
	CycleSort       key.Binding
	FlipSort        key.Binding
	Filter          key.Binding
	Help            key.Binding
	Escape          key.Binding
	Quit            key.Binding
	ForceQuit       key.Binding
}

// NewKeyMap builds the bindings for a variant. Unknown variants use panels.
func NewKeyMap(variant string) KeyMap {
	k := KeyMap{
		Variant: VariantPanels,
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "project list"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "main table"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		FocusProjects: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "focus projects"),
		),
		FocusMain: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus table"),
		),
		FocusDetails: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "focus details"),
		),
		ViewOperational: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "operational view"),
		),
		ViewPlanning: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "planning view"),
		),
		CycleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open PR/issue"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort column"),
		),
		FlipSort: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort direction"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter projects"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close/clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}

	if variant == VariantViews {
		k.Variant = VariantViews
		k.FocusMain.SetEnabled(false)
		k.FocusDetails.SetEnabled(false)
		k.ViewOperational = key.NewBinding(
			key.WithKeys("1", "w"),
			key.WithHelp("1/w", "operational view"),
		)
		k.ViewPlanning = key.NewBinding(
			key.WithKeys("2", "p"),
			key.WithHelp("2/p", "planning view"),
		)
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.CycleView, k.Refresh, k.OpenLink, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.FocusProjects, k.FocusMain, k.FocusDetails, k.ViewOperational, k.ViewPlanning, k.CycleView},
		{k.Refresh, k.OpenLink, k.CycleSort, k.FlipSort, k.Filter},
		{k.Help, k.Escape, k.Quit},
	}
}
