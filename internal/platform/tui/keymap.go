package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-dodge/internal/core"
)

// KeyMap defines the key bindings of a game session.
type KeyMap struct {
	P1Left  key.Binding
	P1Right key.Binding
	P2Left  key.Binding
	P2Right key.Binding
	Start   key.Binding
	Restart key.Binding
	Mode    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Left, k.P1Right, k.P2Left, k.P2Right, k.Start, k.Mode, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P2Left, k.P2Right},
		{k.Start, k.Restart, k.Mode, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Left: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "P1 left"),
		),
		P1Right: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "P1 right"),
		),
		P2Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "P2 left"),
		),
		P2Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "P2 right"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "solo/duo"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	Keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultKeyMap()}
}

// MapKey translates a key message to an action and the player it belongs
// to. Round control keys are reported for Player1. isQuit is true for quit
// requests.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (player core.PlayerID, action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.Keys.Quit):
		return core.Player1, core.ActionQuit, true
	case key.Matches(msg, km.Keys.P1Left):
		return core.Player1, core.ActionLeft, false
	case key.Matches(msg, km.Keys.P1Right):
		return core.Player1, core.ActionRight, false
	case key.Matches(msg, km.Keys.P2Left):
		return core.Player2, core.ActionLeft, false
	case key.Matches(msg, km.Keys.P2Right):
		return core.Player2, core.ActionRight, false
	case key.Matches(msg, km.Keys.Start):
		return core.Player1, core.ActionConfirm, false
	case key.Matches(msg, km.Keys.Restart):
		return core.Player1, core.ActionRestart, false
	case key.Matches(msg, km.Keys.Mode):
		return core.Player1, core.ActionMode, false
	}
	return core.Player1, core.ActionNone, false
}

// MapKeyToMultiFrame records the action of a key message in the frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	player, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Add(player, action)
	}
	return isQuit
}

// topDeadZone is the fraction of the screen height where presses are ignored.
const topDeadZone = 0.15

// MapMouse translates a left press or drag into a lane change. The left half
// of the screen belongs to Player1 and the right half to Player2; inside a
// half, the left quarter of the screen width moves left and the rest moves
// right. Presses in the top 15% of the screen are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, width, height int) (core.PlayerID, core.Action, bool) {
	if msg.Button != tea.MouseButtonLeft {
		return core.Player1, core.ActionNone, false
	}
	if msg.Action != tea.MouseActionPress && msg.Action != tea.MouseActionMotion {
		return core.Player1, core.ActionNone, false
	}
	if width <= 0 || height <= 0 {
		return core.Player1, core.ActionNone, false
	}
	if float64(msg.Y) < float64(height)*topDeadZone {
		return core.Player1, core.ActionNone, false
	}

	half := float64(width) / 2
	x := float64(msg.X)

	player := core.Player1
	local := x
	if x >= half {
		player = core.Player2
		local = x - half
	}

	action := core.ActionRight
	if local < half/2 {
		action = core.ActionLeft
	}
	return player, action, true
}

// MapMouseToMultiFrame records the action of a mouse message in the frame.
func (km *KeyMapper) MapMouseToMultiFrame(msg tea.MouseMsg, width, height int, frame *core.MultiInputFrame) {
	if player, action, ok := km.MapMouse(msg, width, height); ok {
		frame.Add(player, action)
	}
}
