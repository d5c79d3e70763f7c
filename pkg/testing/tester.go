package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
)

// Default harness surface size.
const (
	DefaultTestWidth  = 100.0
	DefaultTestHeight = 100.0
)

// FrameDuration is the clock step PumpAndSettle uses per frame.
const FrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("pump and settle timed out")

// Harness drives a ripple surface against a fake clock.
//
// The harness installs its FakeClock as the animation clock for its
// lifetime. Surfaces pump through the shared animation ticker registry, so
// harness tests must not run in parallel.
type Harness struct {
	clock     *FakeClock
	prevClock animation.Clock
	origin    graphics.Offset
	surface   *ripple.Surface
	responder *ripple.Responder
	pointers  map[int]*pointerState
}

// NewHarness creates a harness with a DefaultTestWidth x DefaultTestHeight
// surface whose top-left sits at the window origin.
// Call Cleanup() when done, or use NewHarnessWithT() instead.
func NewHarness() *Harness {
	clk := NewFakeClock()
	h := &Harness{
		clock:    clk,
		pointers: make(map[int]*pointerState),
	}
	h.prevClock = animation.SetClock(clk)
	h.surface = ripple.NewSurface(graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight})
	h.responder = ripple.NewResponder(h.surface, h.viewBounds)
	return h
}

// NewHarnessWithT creates a harness that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewHarnessWithT(t *testing.T) *Harness {
	h := NewHarness()
	t.Cleanup(h.Cleanup)
	return h
}

// Cleanup disposes the surface and restores the animation clock.
func (h *Harness) Cleanup() {
	h.surface.Dispose()
	animation.SetClock(h.prevClock)
}

// SetSize resizes the surface for ripples started afterwards.
func (h *Harness) SetSize(size graphics.Size) error {
	return h.surface.SetSize(size)
}

// SetOrigin moves the surface within the window. Pointer positions sent
// through the harness are window coordinates.
func (h *Harness) SetOrigin(origin graphics.Offset) {
	h.origin = origin
}

// Clock returns the fake clock for advancing time in tests.
func (h *Harness) Clock() *FakeClock {
	return h.clock
}

// Surface returns the surface under test.
func (h *Harness) Surface() *ripple.Surface {
	return h.surface
}

// Responder returns the responder that receives simulated pointers.
func (h *Harness) Responder() *ripple.Responder {
	return h.responder
}

// Pump runs a single frame: every active animation ticker is stepped.
func (h *Harness) Pump() {
	animation.StepTickers()
}

// Advance moves the clock forward by d and pumps one frame.
func (h *Harness) Advance(d time.Duration) {
	h.clock.Advance(d)
	h.Pump()
}

// PumpAndSettle runs frames until no ripple remains on the surface or the
// timeout is reached. Each frame advances the fake clock by FrameDuration.
// Returns ErrSettleTimeout if the surface does not settle within timeout.
func (h *Harness) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		h.Pump()
		if !h.surface.IsAnimating() {
			return nil
		}
		h.clock.Advance(FrameDuration)
		elapsed += FrameDuration
	}
	return ErrSettleTimeout
}

func (h *Harness) viewBounds() graphics.Rect {
	size := h.surface.Size()
	return graphics.RectFromLTWH(h.origin.X, h.origin.Y, size.Width, size.Height)
}
