package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Intent is what a key press asks the dashboard to do.
type Intent int

// Intents produced by Dispatch.
const (
	IntentNone Intent = iota
	IntentQuit
	IntentNavigateUp
	IntentNavigateDown
	IntentMoveLeft
	IntentMoveRight
	IntentEnter
	IntentFocusProjects
	IntentFocusMain
	IntentFocusDetails
	IntentViewOperational
	IntentViewPlanning
	IntentCycleView
	IntentRefresh
	IntentOpenLink
	IntentCycleSort
	IntentFlipSort
	IntentFilter
	IntentToggleHelp
	IntentCloseHelp
	IntentEscape
)

var intentNames = map[Intent]string{
	IntentNone:            "none",
	IntentQuit:            "quit",
	IntentNavigateUp:      "navigate-up",
	IntentNavigateDown:    "navigate-down",
	IntentMoveLeft:        "move-left",
	IntentMoveRight:       "move-right",
	IntentEnter:           "enter",
	IntentFocusProjects:   "focus-projects",
	IntentFocusMain:       "focus-main",
	IntentFocusDetails:    "focus-details",
	IntentViewOperational: "view-operational",
	IntentViewPlanning:    "view-planning",
	IntentCycleView:       "cycle-view",
	IntentRefresh:         "refresh",
	IntentOpenLink:        "open-link",
	IntentCycleSort:       "cycle-sort",
	IntentFlipSort:        "flip-sort",
	IntentFilter:          "filter",
	IntentToggleHelp:      "toggle-help",
	IntentCloseHelp:       "close-help",
	IntentEscape:          "escape",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// Context is the UI state the dispatcher needs to pick a priority level.
type Context struct {
	ModalOpen    bool
	InputFocused bool
}

// Dispatcher resolves key presses against a KeyMap.
type Dispatcher struct {
	Keys KeyMap
}

// NewDispatcher creates a dispatcher for a keymap variant.
func NewDispatcher(variant string) *Dispatcher {
	return &Dispatcher{Keys: NewKeyMap(variant)}
}

// Dispatch maps msg to an intent. An open modal swallows everything except
// its close keys, and a focused text input receives every key itself.
// ctrl+c always quits.
func (d *Dispatcher) Dispatch(msg tea.KeyMsg, ctx Context) Intent {
	k := d.Keys
	if key.Matches(msg, k.ForceQuit) {
		return IntentQuit
	}

	if ctx.ModalOpen {
		if key.Matches(msg, k.Escape, k.Help) {
			return IntentCloseHelp
		}
		return IntentNone
	}

	if ctx.InputFocused {
		return IntentNone
	}

	switch {
	case key.Matches(msg, k.Up):
		return IntentNavigateUp
	case key.Matches(msg, k.Down):
		return IntentNavigateDown
	case key.Matches(msg, k.Left):
		return IntentMoveLeft
	case key.Matches(msg, k.Right):
		return IntentMoveRight
	case key.Matches(msg, k.Enter):
		return IntentEnter
	case key.Matches(msg, k.FocusProjects):
		return IntentFocusProjects
	case key.Matches(msg, k.FocusMain):
		return IntentFocusMain
	case key.Matches(msg, k.FocusDetails):
		return IntentFocusDetails
	case key.Matches(msg, k.ViewOperational):
		return IntentViewOperational
	case key.Matches(msg, k.ViewPlanning):
		return IntentViewPlanning
	case key.Matches(msg, k.CycleView):
		return IntentCycleView
	case key.Matches(msg, k.Refresh):
		return IntentRefresh
	case key.Matches(msg, k.OpenLink):
		return IntentOpenLink
	case key.Matches(msg, k.CycleSort):
		return IntentCycleSort
	case key.Matches(msg, k.FlipSort):
		return IntentFlipSort
	case key.Matches(msg, k.Filter):
		return IntentFilter
	case key.Matches(msg, k.Help):
		return IntentToggleHelp
	case key.Matches(msg, k.Escape):
		return IntentEscape
	case key.Matches(msg, k.Quit):
		return IntentQuit
	}
	return IntentNone
}
