package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionSelect) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionSelect)
	f.Click(3, 4)

	if !f.Has(ActionSelect) {
		t.Error("Has(ActionSelect) should be true after Set")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{X: 3, Y: 4}) {
		t.Errorf("Clicks = %v, expected [{3 4}]", f.Clicks)
	}

	f.Clear()
	if f.Has(ActionSelect) || len(f.Clicks) != 0 {
		t.Error("Clear should reset actions and clicks")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate the action map")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionShuffle)
	f.Click(1, 1)

	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionShuffle) || len(clone.Clicks) != 1 {
		t.Error("clone should be independent of the original frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionReveal.String() != "Reveal" {
		t.Errorf("ActionReveal.String() = %q", ActionReveal.String())
	}
	if Action(99).String() != "Unknown" {
		t.Error("unknown action should stringify as Unknown")
	}
}
