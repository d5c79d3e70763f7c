package gestures

import (
	"fmt"

	"github.com/go-drift/ink/pkg/graphics"
)

// DefaultDragCancelDistance is how far outside the target bounds a drag may
// travel before the gesture cancels.
const DefaultDragCancelDistance = 20.0

// State is the lifecycle state of one touch gesture.
//
//	Possible ──► Began ──► Changed* ──► Ended
//	                  └───────────────► Cancelled
type State int

const (
	StatePossible State = iota
	StateBegan
	StateChanged
	StateEnded
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePossible:
		return "possible"
	case StateBegan:
		return "began"
	case StateChanged:
		return "changed"
	case StateEnded:
		return "ended"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether the gesture has finished.
func (s State) IsTerminal() bool {
	return s == StateEnded || s == StateCancelled
}

// TouchTracker follows a single-touch gesture over a target view and
// cancels it when the touch is dragged too far outside the target.
//
// Feed it either raw pointer events through HandlePointer or the already
// canonical Begin/Move/End/CancelExternally calls. After a terminal state the
// tracker ignores input until Reset.
type TouchTracker struct {
	// CancelOnDragOut cancels the gesture once a move leaves the inflated
	// target bounds. NewTouchTracker sets it to true.
	CancelOnDragOut bool
	// DragCancelDistance is the margin added around the target bounds.
	DragCancelDistance float64
	// ViewBounds returns the observed view's bounds in window space. It is
	// used when no explicit target bounds are set.
	ViewBounds func() graphics.Rect

	OnBegin  func(point graphics.Offset)
	OnChange func(point graphics.Offset)
	OnEnd    func(point graphics.Offset)
	OnCancel func()

	state        State
	start        graphics.Offset
	current      graphics.Offset
	insideBounds bool

	targetBounds    graphics.Rect
	hasTargetBounds bool

	pointers      map[int64]struct{}
	activePointer int64
}

// NewTouchTracker creates a tracker with default drag-out settings.
func NewTouchTracker(viewBounds func() graphics.Rect) *TouchTracker {
	return &TouchTracker{
		CancelOnDragOut:    true,
		DragCancelDistance: DefaultDragCancelDistance,
		ViewBounds:         viewBounds,
		pointers:           make(map[int64]struct{}),
	}
}

// State returns the current gesture state.
func (t *TouchTracker) State() State {
	return t.state
}

// StartLocation returns where the gesture began, in window space.
func (t *TouchTracker) StartLocation() graphics.Offset {
	return t.start
}

// CurrentLocation returns the last observed touch point, in window space.
func (t *TouchTracker) CurrentLocation() graphics.Offset {
	return t.current
}

// InsideBounds reports the result of the last drag-out check.
func (t *TouchTracker) InsideBounds() bool {
	return t.insideBounds
}

// SetTargetBounds overrides the view bounds used for the drag-out check.
func (t *TouchTracker) SetTargetBounds(r graphics.Rect) {
	t.targetBounds = r
	t.hasTargetBounds = true
}

// ClearTargetBounds falls back to the view bounds.
func (t *TouchTracker) ClearTargetBounds() {
	t.targetBounds = graphics.Rect{}
	t.hasTargetBounds = false
}

// TargetBounds returns the bounds the drag-out check uses.
func (t *TouchTracker) TargetBounds() graphics.Rect {
	if t.hasTargetBounds {
		return t.targetBounds
	}
	if t.ViewBounds != nil {
		return t.ViewBounds()
	}
	return graphics.Rect{}
}

// Reset prepares the tracker for a new gesture. Pointer bookkeeping is kept
// so that a pointer still down from the previous gesture is not forgotten.
func (t *TouchTracker) Reset() {
	t.state = StatePossible
	t.start = graphics.Offset{}
	t.current = graphics.Offset{}
	t.insideBounds = false
}

// Begin starts the gesture at point. It is ignored unless the tracker is
// in the Possible state.
func (t *TouchTracker) Begin(point graphics.Offset) {
	if t.state != StatePossible {
		return
	}
	t.start = point
	t.current = point
	t.insideBounds = true
	t.state = StateBegan
	if t.OnBegin != nil {
		t.OnBegin(point)
	}
}

// Move records a new touch location and runs the drag-out check.
func (t *TouchTracker) Move(point graphics.Offset) {
	if t.state != StateBegan && t.state != StateChanged {
		return
	}
	t.current = point
	t.insideBounds = t.TargetBounds().Inflate(t.DragCancelDistance).Contains(point)
	if t.CancelOnDragOut && !t.insideBounds {
		t.cancel()
		return
	}
	t.state = StateChanged
	if t.OnChange != nil {
		t.OnChange(point)
	}
}

// End finishes the gesture at point.
func (t *TouchTracker) End(point graphics.Offset) {
	if t.state != StateBegan && t.state != StateChanged {
		return
	}
	t.current = point
	t.state = StateEnded
	if t.OnEnd != nil {
		t.OnEnd(point)
	}
}

// CancelExternally cancels the gesture, e.g. when the system interrupts touches.
func (t *TouchTracker) CancelExternally() {
	if t.state != StateBegan && t.state != StateChanged {
		return
	}
	t.cancel()
}

func (t *TouchTracker) cancel() {
	t.state = StateCancelled
	if t.OnCancel != nil {
		t.OnCancel()
	}
}

// HandlePointer maps a raw pointer event onto the gesture. A second pointer
// going down while one is already down cancels the gesture: multi-touch
// never produces ripples. Only the pointer that began the gesture drives
// Move and End.
func (t *TouchTracker) HandlePointer(event PointerEvent) {
	if t.pointers == nil {
		t.pointers = make(map[int64]struct{})
	}
	switch event.Phase {
	case PointerPhaseDown:
		t.pointers[event.PointerID] = struct{}{}
		if len(t.pointers) > 1 {
			t.CancelExternally()
			return
		}
		if t.state.IsTerminal() {
			t.Reset()
		}
		t.activePointer = event.PointerID
		t.Begin(event.Position)
	case PointerPhaseMove:
		if event.PointerID == t.activePointer {
			t.Move(event.Position)
		}
	case PointerPhaseUp:
		delete(t.pointers, event.PointerID)
		if event.PointerID == t.activePointer {
			t.End(event.Position)
		}
	case PointerPhaseCancel:
		delete(t.pointers, event.PointerID)
		if event.PointerID == t.activePointer {
			t.CancelExternally()
		}
	}
}
