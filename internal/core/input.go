package core

import "time"

// Action is a semantic game action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - run left
	ActionRight          // D, Right arrow - run right
	ActionJump           // Space, W, Up - jump
	ActionConfirm        // Enter - confirm selection in menus
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
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
	case ActionBack:
		return "Back"
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

// InputFrame is the input state for one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Horizontal folds Left/Right into -1, 0 or +1.
// Right wins when both are held.
func (f InputFrame) Horizontal() int {
	switch {
	case f.Has(ActionRight):
		return 1
	case f.Has(ActionLeft):
		return -1
	default:
		return 0
	}
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// DefaultHoldWindow is how long a repeating key counts as held after its
// last repeat. Terminal auto-repeat refreshes it well within this window.
const DefaultHoldWindow = 150 * time.Millisecond

// DefaultInitialHoldWindow covers the delay before a terminal starts
// auto-repeating a held key, typically 250 to 660ms.
const DefaultInitialHoldWindow = 550 * time.Millisecond

// KeyState turns key presses into held-key state.
//
// Terminals report presses and auto-repeats but never releases, so a key is
// considered down until no press has been seen for its hold window. A fresh
// press gets the long initial window; once a repeat arrives the key switches
// to the short repeat window, so letting go is noticed quickly.
type KeyState struct {
	initial time.Duration
	repeat  time.Duration
	keys    map[Action]heldKey
}

type heldKey struct {
	last      time.Time
	repeating bool
}

// NewKeyState creates a key state with the given hold windows.
// Non-positive windows select the defaults. The initial window is never
// shorter than the repeat window.
func NewKeyState(initial, repeat time.Duration) *KeyState {
	if repeat <= 0 {
		repeat = DefaultHoldWindow
	}
	if initial <= 0 {
		initial = DefaultInitialHoldWindow
	}
	return &KeyState{
		initial: max(initial, repeat),
		repeat:  repeat,
		keys:    make(map[Action]heldKey),
	}
}

// Press records a key-down (or auto-repeat) for an action.
// Pressing one direction releases the opposite one so turning around is instant.
func (k *KeyState) Press(a Action, now time.Time) {
	switch a {
	case ActionLeft:
		delete(k.keys, ActionRight)
	case ActionRight:
		delete(k.keys, ActionLeft)
	}
	// A press while the key is still held is an auto-repeat
	repeating := k.Down(a, now)
	k.keys[a] = heldKey{last: now, repeating: repeating}
}

// Release forgets an action immediately.
func (k *KeyState) Release(a Action) {
	delete(k.keys, a)
}

// Down reports whether the action is currently held.
func (k *KeyState) Down(a Action, now time.Time) bool {
	h, ok := k.keys[a]
	if !ok {
		return false
	}
	window := k.initial
	if h.repeating {
		window = k.repeat
	}
	if now.Sub(h.last) > window {
		delete(k.keys, a)
		return false
	}
	return true
}

// Frame builds the input frame for a tick from the held keys.
func (k *KeyState) Frame(now time.Time) InputFrame {
	f := NewInputFrame()
	for _, a := range []Action{ActionLeft, ActionRight, ActionJump} {
		if k.Down(a, now) {
			f.Set(a)
		}
	}
	return f
}
