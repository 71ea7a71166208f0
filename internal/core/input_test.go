package core

import "testing"

func TestInputFrameKeepsOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionNone)
	f.Set(ActionLeft)
	f.Set(ActionRotate)

	if len(f.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, expected 3", len(f.Actions))
	}
	if f.Actions[0] != ActionLeft || f.Actions[2] != ActionRotate {
		t.Errorf("Actions = %v, expected [Left Left Rotate]", f.Actions)
	}
	if !f.Has(ActionRotate) || f.Has(ActionHold) {
		t.Error("Has() reported wrong membership")
	}

	clone := f.Clone()
	f.Clear()
	if len(clone.Actions) != 3 {
		t.Errorf("Clone should be independent of Clear, got %d actions", len(clone.Actions))
	}
}

func TestMultiInputFrame(t *testing.T) {
	m := NewMultiInputFrame()
	m.Add(Player2, ActionHardDrop)

	if !m.Player2().Has(ActionHardDrop) {
		t.Error("Player2 frame should contain HardDrop")
	}
	if len(m.Player1().Actions) != 0 {
		t.Error("Player1 frame should be empty")
	}

	m.Clear()
	if m.Player2().Has(ActionHardDrop) {
		t.Error("Clear should drop all player input")
	}
}

func TestPlayerOpponent(t *testing.T) {
	if Player1.Opponent() != Player2 || Player2.Opponent() != Player1 {
		t.Error("Opponent() should swap sides")
	}
	if PlayerNone.Opponent() != PlayerNone {
		t.Error("PlayerNone has no opponent")
	}
}
