package core

// Action represents a semantic game intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move one lane left
	ActionRight          // D, Right arrow - move one lane right
	ActionJump           // Space, W, Up - jump
	ActionDash           // Shift, S, Down - dash
	ActionUseTool        // E, F - swing the axe at a tree ahead
	ActionPause          // P - pause/unpause
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after game over
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
	case ActionDash:
		return "Dash"
	case ActionUseTool:
		return "UseTool"
	case ActionPause:
		return "Pause"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the edge-triggered actions asserted during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// InputOf builds a frame with the given actions set.
func InputOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
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

// DefaultBufferWindow is how long (seconds) a press stays consumable.
const DefaultBufferWindow = 0.15

// InputBuffer remembers when each intent was last asserted so a press that
// arrives slightly before the game can act on it is not lost. Times are
// simulation seconds, not wall clock.
type InputBuffer struct {
	window  float64
	pressed map[Action]float64
}

// NewInputBuffer creates a buffer with the given window in seconds.
// A non-positive window falls back to DefaultBufferWindow.
func NewInputBuffer(window float64) *InputBuffer {
	if window <= 0 {
		window = DefaultBufferWindow
	}
	return &InputBuffer{
		window:  window,
		pressed: make(map[Action]float64),
	}
}

// Record stores every action in the frame as asserted at time now.
func (b *InputBuffer) Record(f InputFrame, now float64) {
	for a, on := range f.Actions {
		if on {
			b.pressed[a] = now
		}
	}
}

// Press asserts a single action at time now.
func (b *InputBuffer) Press(a Action, now float64) {
	b.pressed[a] = now
}

// Peek reports whether a was asserted within the window without consuming it.
func (b *InputBuffer) Peek(a Action, now float64) bool {
	at, ok := b.pressed[a]
	if !ok {
		return false
	}
	if now-at > b.window {
		delete(b.pressed, a)
		return false
	}
	return true
}

// PressedAt returns when a pending press of a was asserted.
func (b *InputBuffer) PressedAt(a Action, now float64) (float64, bool) {
	if !b.Peek(a, now) {
		return 0, false
	}
	return b.pressed[a], true
}

// Consume reports whether a was asserted since it was last consumed and
// within the window. A successful consume clears the press.
func (b *InputBuffer) Consume(a Action, now float64) bool {
	if !b.Peek(a, now) {
		return false
	}
	delete(b.pressed, a)
	return true
}

// Reset forgets every pending press.
func (b *InputBuffer) Reset() {
	for k := range b.pressed {
		delete(b.pressed, k)
	}
}
