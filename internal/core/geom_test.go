package core

import "testing"

func TestPointAdd(t *testing.T) {
	got := Pt(3, 22).Add(Pt(-1, -2))
	if got != Pt(2, 20) {
		t.Errorf("Add = %+v, want {2 20}", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(19, 1, 22, 22)
	if r.Right() != 41 || r.Bottom() != 23 {
		t.Errorf("Right, Bottom = %d, %d, want 41, 23", r.Right(), r.Bottom())
	}
}

func TestAbs(t *testing.T) {
	tests := []struct{ in, want int }{
		{5, 5},
		{-5, 5},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Abs(tt.in); got != tt.want {
			t.Errorf("Abs(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEventString(t *testing.T) {
	if EventHardDrop.String() != "HardDrop" {
		t.Errorf("EventHardDrop.String() = %q", EventHardDrop.String())
	}
}
