package core

// PlayerID identifies a local player. Player1 is always present; Player2
// exists only in two-player modes.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
)

// String returns a short label for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A / Left arrow - move one lane left
	ActionRight          // D / Right arrow - move one lane right
	ActionConfirm        // Space, Enter - start a round
	ActionRestart        // R - retry after a crash
	ActionMode           // M - switch between solo and duo between rounds
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionMode:
		return "Mode"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input of a single player collected during one frame.
type InputFrame struct {
	// Actions lists triggered actions in arrival order. Lane moves are
	// discrete events, so two presses in one frame move two lanes.
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// MultiInputFrame contains input from all local players for a single frame.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// Add records an action for a specific player.
func (m *MultiInputFrame) Add(id PlayerID, a Action) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	frame := m.ByPlayer[id]
	frame.Set(a)
	m.ByPlayer[id] = frame
}

// Has reports whether any player triggered the action this frame.
func (m MultiInputFrame) Has(a Action) bool {
	for _, frame := range m.ByPlayer {
		if frame.Has(a) {
			return true
		}
	}
	return false
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}
