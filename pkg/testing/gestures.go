package testing

import (
	"github.com/go-drift/ink/pkg/gestures"
	"github.com/go-drift/ink/pkg/graphics"
)

// pointerState tracks the last position of a simulated pointer.
type pointerState struct {
	position graphics.Offset
}

// nextPointerID is incremented for each new pointer to avoid collisions.
var nextPointerID int64

func allocPointerID() int64 {
	nextPointerID++
	return nextPointerID
}

// TapAt simulates a press and immediate release at the given window position.
func (h *Harness) TapAt(pos graphics.Offset) {
	id := int(allocPointerID())
	h.SendPointerDown(pos, id)
	h.SendPointerUp(pos, id)
}

// DragFrom simulates a press at start, a move by delta in steps moves, and
// a release at the final position.
func (h *Harness) DragFrom(start, delta graphics.Offset, steps int) {
	if steps < 1 {
		steps = 1
	}
	id := int(allocPointerID())
	h.SendPointerDown(start, id)
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		h.SendPointerMove(graphics.Offset{
			X: start.X + delta.X*frac,
			Y: start.Y + delta.Y*frac,
		}, id)
	}
	h.SendPointerUp(start.Add(delta), id)
}

// SendPointerDown sends a pointer-down event at pos with the given pointer ID.
func (h *Harness) SendPointerDown(pos graphics.Offset, pointerID int) {
	h.pointers[pointerID] = &pointerState{position: pos}
	h.send(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Phase:     gestures.PointerPhaseDown,
	})
}

// SendPointerMove sends a pointer-move event at pos with the given pointer ID.
func (h *Harness) SendPointerMove(pos graphics.Offset, pointerID int) {
	delta := graphics.Offset{}
	if state := h.pointers[pointerID]; state != nil {
		delta = pos.Sub(state.position)
		state.position = pos
	}
	h.send(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Delta:     delta,
		Phase:     gestures.PointerPhaseMove,
	})
}

// SendPointerUp sends a pointer-up event at pos with the given pointer ID.
func (h *Harness) SendPointerUp(pos graphics.Offset, pointerID int) {
	delta := graphics.Offset{}
	if state := h.pointers[pointerID]; state != nil {
		delta = pos.Sub(state.position)
	}
	delete(h.pointers, pointerID)
	h.send(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Delta:     delta,
		Phase:     gestures.PointerPhaseUp,
	})
}

// SendPointerCancel sends a pointer-cancel event for the given pointer ID.
func (h *Harness) SendPointerCancel(pointerID int) {
	pos := graphics.Offset{}
	if state := h.pointers[pointerID]; state != nil {
		pos = state.position
	}
	delete(h.pointers, pointerID)
	h.send(gestures.PointerEvent{
		PointerID: int64(pointerID),
		Position:  pos,
		Phase:     gestures.PointerPhaseCancel,
	})
}

func (h *Harness) send(event gestures.PointerEvent) {
	h.responder.HandlePointer(event)
}
