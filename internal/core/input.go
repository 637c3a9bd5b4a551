package core

// PlayerID identifies one side of the arena. Player1 owns the left paddle.
type PlayerID int

const (
	NoPlayer PlayerID = iota
	Player1
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
		return "none"
	}
}

// Opponent returns the other side. NoPlayer has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Valid reports whether p names a paddle.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Direction is a vertical movement intent for a paddle.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	default:
		return "None"
	}
}

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp          // W - player 1 up
	ActionDown        // S - player 1 down
	ActionUp2         // Up arrow - player 2 up (versus mode)
	ActionDown2       // Down arrow - player 2 down (versus mode)
	ActionRestart     // R key - restart after match end
	ActionQuit        // Q, Ctrl+C - exit
	ActionPause       // P, Escape - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionUp2:
		return "Up2"
	case ActionDown2:
		return "Down2"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Direction folds the up/down pair of actions into a paddle intent.
// Pressing both cancels out.
func (f InputFrame) Direction(up, down Action) Direction {
	u, d := f.Has(up), f.Has(down)
	switch {
	case u && !d:
		return DirUp
	case d && !u:
		return DirDown
	default:
		return DirNone
	}
}
