package core

import (
	"testing"
	"time"
)

func TestInputFrameHorizontal(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		expected int
	}{
		{"none", nil, 0},
		{"left", []Action{ActionLeft}, -1},
		{"right", []Action{ActionRight}, 1},
		{"both prefers right", []Action{ActionLeft, ActionRight}, 1},
		{"jump only", []Action{ActionJump}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			if got := f.Horizontal(); got != tc.expected {
				t.Errorf("Horizontal() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
}

func TestKeyStateHoldWindow(t *testing.T) {
	base := time.Unix(1000, 0)
	k := NewKeyState(500*time.Millisecond, 100*time.Millisecond)

	// A single press covers the terminal's repeat delay
	k.Press(ActionRight, base)
	for _, ms := range []int{100, 200, 300, 450} {
		if !k.Down(ActionRight, base.Add(time.Duration(ms)*time.Millisecond)) {
			t.Errorf("key released at +%dms before auto-repeat could start", ms)
		}
	}
	if k.Down(ActionRight, base.Add(501*time.Millisecond)) {
		t.Error("key should be released after the initial window")
	}

	// Once repeating, the short window applies
	k.Press(ActionLeft, base)
	k.Press(ActionLeft, base.Add(400*time.Millisecond))
	k.Press(ActionLeft, base.Add(430*time.Millisecond))
	if !k.Down(ActionLeft, base.Add(520*time.Millisecond)) {
		t.Error("repeat press should refresh the window")
	}
	if k.Down(ActionLeft, base.Add(540*time.Millisecond)) {
		t.Error("key should be released shortly after repeats stop")
	}

	k.Press(ActionJump, base)
	k.Release(ActionJump)
	if k.Down(ActionJump, base.Add(10*time.Millisecond)) {
		t.Error("Release should clear the key")
	}
}

func TestKeyStateFreshPressAfterRelease(t *testing.T) {
	base := time.Unix(1000, 0)
	k := NewKeyState(500*time.Millisecond, 100*time.Millisecond)

	k.Press(ActionRight, base)
	k.Press(ActionRight, base.Add(300*time.Millisecond))
	// Expired; the next press starts over with the initial window
	k.Press(ActionRight, base.Add(time.Second))
	if !k.Down(ActionRight, base.Add(time.Second+400*time.Millisecond)) {
		t.Error("new press after release should get the initial window")
	}
}

func TestNewKeyStateDefaults(t *testing.T) {
	k := NewKeyState(0, 0)
	if k.initial != DefaultInitialHoldWindow || k.repeat != DefaultHoldWindow {
		t.Errorf("windows = %v/%v, want defaults", k.initial, k.repeat)
	}
	k = NewKeyState(50*time.Millisecond, 200*time.Millisecond)
	if k.initial != 200*time.Millisecond {
		t.Errorf("initial = %v, want it raised to the repeat window", k.initial)
	}
}

func TestKeyStateFrame(t *testing.T) {
	now := time.Unix(1000, 0)
	k := NewKeyState(0, 0)
	k.Press(ActionLeft, now)
	k.Press(ActionJump, now)

	f := k.Frame(now.Add(10 * time.Millisecond))
	if !f.Has(ActionJump) || f.Horizontal() != -1 {
		t.Errorf("unexpected frame: %v", f.Actions)
	}

	f = k.Frame(now.Add(time.Second))
	if len(f.Actions) != 0 {
		t.Errorf("expected empty frame after hold window, got %v", f.Actions)
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify to Unknown")
	}
}

func TestKeyStateOppositeDirection(t *testing.T) {
	now := time.Unix(1000, 0)
	k := NewKeyState(0, 0)
	k.Press(ActionRight, now)
	k.Press(ActionLeft, now.Add(10*time.Millisecond))

	if k.Down(ActionRight, now.Add(20*time.Millisecond)) {
		t.Error("pressing left should release right")
	}
	if !k.Down(ActionLeft, now.Add(20*time.Millisecond)) {
		t.Error("left should be held")
	}
}
