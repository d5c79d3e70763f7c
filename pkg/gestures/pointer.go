// Package gestures turns raw pointer phases into the canonical touch
// sequence the ripple engine consumes.
package gestures

import (
	"fmt"

	"github.com/go-drift/ink/pkg/graphics"
)

// PointerPhase is the phase of a single pointer event.
type PointerPhase int

const (
	PointerPhaseDown PointerPhase = iota
	PointerPhaseMove
	PointerPhaseUp
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("PointerPhase(%d)", int(p))
	}
}

// PointerEvent is one pointer sample. Position is in window space, which
// stays valid while the target view moves.
type PointerEvent struct {
	PointerID int64
	Position  graphics.Offset
	Delta     graphics.Offset
	Phase     PointerPhase
}
