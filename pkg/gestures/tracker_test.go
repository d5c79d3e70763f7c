package gestures

import (
	"testing"

	"github.com/go-drift/ink/pkg/graphics"
)

type recorder struct {
	events []string
}

func newRecordedTracker(view graphics.Rect) (*TouchTracker, *recorder) {
	rec := &recorder{}
	tr := NewTouchTracker(func() graphics.Rect { return view })
	tr.OnBegin = func(graphics.Offset) { rec.events = append(rec.events, "begin") }
	tr.OnChange = func(graphics.Offset) { rec.events = append(rec.events, "change") }
	tr.OnEnd = func(graphics.Offset) { rec.events = append(rec.events, "end") }
	tr.OnCancel = func() { rec.events = append(rec.events, "cancel") }
	return tr, rec
}

func TestTouchTracker_BeginMoveEnd(t *testing.T) {
	tr, rec := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))

	tr.Begin(graphics.Offset{X: 10, Y: 10})
	if tr.State() != StateBegan {
		t.Fatalf("state = %v, want began", tr.State())
	}
	tr.Move(graphics.Offset{X: 20, Y: 20})
	if tr.State() != StateChanged {
		t.Fatalf("state = %v, want changed", tr.State())
	}
	tr.End(graphics.Offset{X: 20, Y: 20})
	if tr.State() != StateEnded {
		t.Fatalf("state = %v, want ended", tr.State())
	}
	if tr.StartLocation() != (graphics.Offset{X: 10, Y: 10}) {
		t.Errorf("start = %v", tr.StartLocation())
	}
	want := []string{"begin", "change", "end"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Errorf("events = %v, want %v", rec.events, want)
		}
	}
}

func TestTouchTracker_DragOutMargin(t *testing.T) {
	tests := []struct {
		name      string
		point     graphics.Offset
		wantState State
	}{
		{"inside view", graphics.Offset{X: 50, Y: 50}, StateChanged},
		{"inside margin", graphics.Offset{X: 119, Y: 50}, StateChanged},
		{"on margin edge", graphics.Offset{X: -20, Y: -20}, StateChanged},
		{"beyond margin", graphics.Offset{X: 121, Y: 50}, StateCancelled},
		{"above margin", graphics.Offset{X: 50, Y: -20.5}, StateCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _ := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
			tr.Begin(graphics.Offset{X: 50, Y: 50})
			tr.Move(tt.point)
			if tr.State() != tt.wantState {
				t.Errorf("state = %v, want %v", tr.State(), tt.wantState)
			}
		})
	}
}

func TestTouchTracker_DragOutDisabled(t *testing.T) {
	tr, _ := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
	tr.CancelOnDragOut = false
	tr.Begin(graphics.Offset{X: 50, Y: 50})
	tr.Move(graphics.Offset{X: 500, Y: 500})
	if tr.State() != StateChanged {
		t.Errorf("state = %v, want changed", tr.State())
	}
	if tr.InsideBounds() {
		t.Error("InsideBounds should still report the failed check")
	}
}

func TestTouchTracker_TargetBoundsOverride(t *testing.T) {
	tr, _ := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
	tr.SetTargetBounds(graphics.RectFromLTWH(0, 0, 10, 10))
	tr.Begin(graphics.Offset{X: 5, Y: 5})
	tr.Move(graphics.Offset{X: 40, Y: 5})
	if tr.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled against the smaller target", tr.State())
	}

	tr.ClearTargetBounds()
	if tr.TargetBounds() != graphics.RectFromLTWH(0, 0, 100, 100) {
		t.Errorf("TargetBounds() = %+v after clear", tr.TargetBounds())
	}
}

func TestTouchTracker_TerminalIgnoresInput(t *testing.T) {
	tr, rec := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
	tr.Begin(graphics.Offset{X: 1, Y: 1})
	tr.CancelExternally()
	tr.Move(graphics.Offset{X: 2, Y: 2})
	tr.End(graphics.Offset{X: 2, Y: 2})
	tr.Begin(graphics.Offset{X: 3, Y: 3})

	if tr.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled", tr.State())
	}
	if len(rec.events) != 2 {
		t.Errorf("events = %v, want [begin cancel]", rec.events)
	}

	tr.Reset()
	tr.Begin(graphics.Offset{X: 3, Y: 3})
	if tr.State() != StateBegan {
		t.Errorf("state after Reset+Begin = %v", tr.State())
	}
}

func TestTouchTracker_SecondPointerCancels(t *testing.T) {
	tr, rec := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
	tr.HandlePointer(PointerEvent{PointerID: 1, Position: graphics.Offset{X: 10, Y: 10}, Phase: PointerPhaseDown})
	tr.HandlePointer(PointerEvent{PointerID: 2, Position: graphics.Offset{X: 30, Y: 30}, Phase: PointerPhaseDown})

	if tr.State() != StateCancelled {
		t.Fatalf("state = %v, want cancelled", tr.State())
	}

	// Releasing the first pointer must not end the cancelled gesture.
	tr.HandlePointer(PointerEvent{PointerID: 1, Position: graphics.Offset{X: 10, Y: 10}, Phase: PointerPhaseUp})
	if tr.State() != StateCancelled {
		t.Errorf("state = %v after up, want cancelled", tr.State())
	}

	// While pointer 2 is still down a fresh press is still multi-touch.
	tr.HandlePointer(PointerEvent{PointerID: 3, Position: graphics.Offset{X: 10, Y: 10}, Phase: PointerPhaseDown})
	if tr.State() != StateCancelled {
		t.Errorf("state = %v, want cancelled while two pointers are down", tr.State())
	}
	if len(rec.events) != 2 {
		t.Errorf("events = %v, want [begin cancel]", rec.events)
	}
}

func TestTouchTracker_HandlePointerRecyclesAfterTerminal(t *testing.T) {
	tr, rec := newRecordedTracker(graphics.RectFromLTWH(0, 0, 100, 100))
	down := func(id int64) {
		tr.HandlePointer(PointerEvent{PointerID: id, Position: graphics.Offset{X: 10, Y: 10}, Phase: PointerPhaseDown})
	}
	up := func(id int64) {
		tr.HandlePointer(PointerEvent{PointerID: id, Position: graphics.Offset{X: 10, Y: 10}, Phase: PointerPhaseUp})
	}

	down(1)
	up(1)
	down(2)
	tr.HandlePointer(PointerEvent{PointerID: 7, Position: graphics.Offset{X: 90, Y: 90}, Phase: PointerPhaseMove})
	up(2)

	want := []string{"begin", "end", "begin", "end"}
	if len(rec.events) != len(want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
	for i := range want {
		if rec.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", rec.events, want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateCancelled.String() != "cancelled" || State(9).String() != "State(9)" {
		t.Error("unexpected State strings")
	}
	if PointerPhaseCancel.String() != "cancel" {
		t.Error("unexpected PointerPhase string")
	}
}
