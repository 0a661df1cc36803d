package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows controllers to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - walk left
	ActionRight          // D, Right arrow - walk right
	ActionJump           // Space, W, Up - jump
	ActionConfirm        // Enter - confirm on end screens
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R key - restart the level
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
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
// Held actions are levels (a direction key kept down); pressed actions are
// edges that happened since the previous tick.
type InputFrame struct {
	held    map[Action]bool
	pressed map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		held:    make(map[Action]bool),
		pressed: make(map[Action]bool),
	}
}

// Hold marks an action as held for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.held == nil {
		f.held = make(map[Action]bool)
	}
	f.held[a] = true
}

// Press records a press edge for this frame. A pressed action also counts as held.
func (f *InputFrame) Press(a Action) {
	if f.pressed == nil {
		f.pressed = make(map[Action]bool)
	}
	f.pressed[a] = true
	f.Hold(a)
}

// Held reports whether the action is held this frame.
func (f InputFrame) Held(a Action) bool {
	return f.held[a]
}

// JustPressed reports whether the action was pressed since the previous frame.
func (f InputFrame) JustPressed(a Action) bool {
	return f.pressed[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.held)
	clear(f.pressed)
}
