package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := InputOf(ActionJump, ActionLeft)
	if !f.Has(ActionJump) || !f.Has(ActionLeft) {
		t.Fatal("InputOf should set all given actions")
	}
	if f.Has(ActionDash) {
		t.Error("unset action should not be reported")
	}
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should reset actions")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionDash)
	if !zero.Has(ActionDash) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputBufferWindow(t *testing.T) {
	b := NewInputBuffer(0.15)
	b.Press(ActionJump, 1.0)

	if !b.Peek(ActionJump, 1.1) {
		t.Error("press within window should be visible")
	}
	if !b.Consume(ActionJump, 1.14) {
		t.Error("press within window should be consumable")
	}
	if b.Consume(ActionJump, 1.14) {
		t.Error("a press can only be consumed once")
	}
}

func TestInputBufferExpires(t *testing.T) {
	b := NewInputBuffer(0)
	b.Record(InputOf(ActionDash), 2.0)

	if b.Consume(ActionDash, 2.0+DefaultBufferWindow+0.01) {
		t.Error("press older than the window should be dropped")
	}
}

func TestInputBufferPressedAt(t *testing.T) {
	b := NewInputBuffer(0.15)
	if _, ok := b.PressedAt(ActionJump, 1.0); ok {
		t.Error("no press recorded yet")
	}
	b.Press(ActionJump, 1.0)
	if at, ok := b.PressedAt(ActionJump, 1.1); !ok || at != 1.0 {
		t.Errorf("PressedAt() = %f, %t, expected 1.0, true", at, ok)
	}
	if _, ok := b.PressedAt(ActionJump, 1.2); ok {
		t.Error("expired press should not be reported")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionLeft:    "Left",
		ActionUseTool: "UseTool",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, a.String(), want)
		}
	}
}
