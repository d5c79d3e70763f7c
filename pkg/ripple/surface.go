package ripple

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/graphics"
)

// Style controls whether ripples are clipped to the surface.
type Style int

const (
	// StyleBounded clips ripples to the surface bounds.
	StyleBounded Style = iota
	// StyleUnbounded lets ripples draw past the surface bounds.
	StyleUnbounded
)

func (s Style) String() string {
	switch s {
	case StyleBounded:
		return "bounded"
	case StyleUnbounded:
		return "unbounded"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Surface owns the ripples drawn on one interactive area and routes touch
// updates to the active one.
//
// A Surface is not safe for concurrent use; drive it from the UI thread.
// Call Dispose when the surface goes away so its ticker stops.
type Surface struct {
	size            graphics.Size
	inkColor        graphics.Color
	style           Style
	maxRippleRadius float64

	ripples   []*Ripple
	active    ID
	nextID    ID
	lastPoint graphics.Offset

	listeners      []listenerEntry
	nextListenerID int
	cancelWaiters  []*cancelWaiter

	ticker *animation.Ticker
}

type listenerEntry struct {
	id       int
	listener Listener
}

// cancelWaiter tracks the ripples a CancelAllRipples call is waiting on.
type cancelWaiter struct {
	pending    map[ID]struct{}
	completion func()
}

// NewSurface creates a bounded surface of the given size using the
// default ink color.
func NewSurface(size graphics.Size) *Surface {
	return &Surface{
		size:     size,
		inkColor: graphics.DefaultInkColor,
		style:    StyleBounded,
	}
}

// Size returns the surface size.
func (s *Surface) Size() graphics.Size { return s.size }

// Bounds returns the surface bounds in local coordinates.
func (s *Surface) Bounds() graphics.Rect { return graphics.RectFromSize(s.size) }

// SetSize updates the surface size used by ripples started afterwards.
// Ripples already on the surface keep the geometry they started with.
func (s *Surface) SetSize(size graphics.Size) error {
	if err := validateSize("ripple.SetSize", size); err != nil {
		return err
	}
	s.size = size
	return nil
}

// InkColor returns the default color for new ripples.
func (s *Surface) InkColor() graphics.Color { return s.inkColor }

// SetInkColor sets the default color for new ripples.
func (s *Surface) SetInkColor(c graphics.Color) { s.inkColor = c }

// Style returns the clipping style.
func (s *Surface) Style() Style { return s.style }

// SetStyle sets the clipping style.
func (s *Surface) SetStyle(style Style) { s.style = style }

// MaxRippleRadius returns the radius override, or 0 when unset.
func (s *Surface) MaxRippleRadius() float64 { return s.maxRippleRadius }

// SetMaxRippleRadius overrides the shape radius of new ripples. Zero, a
// negative value or a non-finite value leaves the radius unset.
func (s *Surface) SetMaxRippleRadius(radius float64) {
	if !(radius > 0) || math.IsInf(radius, 1) {
		radius = 0
	}
	s.maxRippleRadius = radius
}

// StartRipple starts a new ripple at point (local coordinates) using the
// surface ink color and makes it the active ripple. completion, if not nil,
// runs once the touch-down animation finishes.
func (s *Surface) StartRipple(point graphics.Offset, completion func()) (*Ripple, error) {
	return s.StartRippleWithColor(point, s.inkColor, completion)
}

// StartRippleWithColor is StartRipple with a per-ripple color.
//
// A new ripple is always created; ripples already fading are never reused.
// A previously active ripple is released at the last known touch point and
// fades out on its own schedule, so only the new ripple accepts touches.
func (s *Surface) StartRippleWithColor(point graphics.Offset, color graphics.Color, completion func()) (*Ripple, error) {
	const op = "ripple.StartRipple"
	if !point.IsFinite() {
		return nil, errors.Geometry(op, "point %v is not finite", point)
	}
	if err := validateSize(op, s.size); err != nil {
		return nil, err
	}

	now := animation.Now()
	if prev := s.ActiveRipple(); prev != nil {
		prev.end(now, s.lastPoint, true, nil)
	}

	s.nextID++
	r := newRipple(s.nextID, s.size, color, s.maxRippleRadius, surfaceObserver{s})
	s.ripples = append(s.ripples, r)
	s.active = r.id
	s.lastPoint = point

	r.start(now, point, s.guard("ripple.startCompletion", completion))
	s.ensureTicker()
	return r, nil
}

// ChangeRipple routes a drag update to the active ripple. It is a no-op
// without one.
func (s *Surface) ChangeRipple(point graphics.Offset) error {
	if !point.IsFinite() {
		return errors.Geometry("ripple.ChangeRipple", "point %v is not finite", point)
	}
	r := s.ActiveRipple()
	if r == nil {
		return nil
	}
	s.lastPoint = point
	r.change(animation.Now(), point)
	return nil
}

// EndRipple fades out the active ripple at the last known touch point and
// clears the active slot. The ripple stays on the surface until its
// fade-out completes; completion runs at that point. Without an active
// ripple completion runs immediately.
func (s *Surface) EndRipple(animated bool, completion func()) {
	r := s.ActiveRipple()
	s.active = 0
	if r == nil {
		s.guard("ripple.endCompletion", completion)()
		return
	}
	r.end(animation.Now(), s.lastPoint, animated, s.guard("ripple.endCompletion", completion))
}

// CancelAllRipples fades out every ripple that is still accepting touches,
// each as if released at its own center, and clears the active slot.
// Ripples already fading keep their schedule. completion runs once every
// ripple on the surface at the time of the call has been removed.
func (s *Surface) CancelAllRipples(animated bool, completion func()) {
	s.active = 0
	now := animation.Now()

	var waiter *cancelWaiter
	if completion != nil {
		waiter = &cancelWaiter{pending: make(map[ID]struct{}), completion: s.guard("ripple.cancelCompletion", completion)}
	}
	for _, r := range append([]*Ripple(nil), s.ripples...) {
		r.end(now, r.bounds.Center(), animated, nil)
		if waiter != nil && r.phase != PhaseRemoved {
			waiter.pending[r.id] = struct{}{}
		}
	}
	if waiter == nil {
		return
	}
	if len(waiter.pending) == 0 {
		waiter.completion()
		return
	}
	s.cancelWaiters = append(s.cancelWaiters, waiter)
}

// Pump processes every milestone reached at the current animation time and
// detaches ripples whose fade-out has completed. The surface's ticker calls
// it each frame; hosts without a ticker-driven loop may call it directly.
func (s *Surface) Pump() {
	now := animation.Now()
	for _, r := range append([]*Ripple(nil), s.ripples...) {
		r.advance(now)
	}
	if len(s.ripples) == 0 && s.ticker != nil {
		s.ticker.Stop()
	}
}

// Ripples returns the ripples on the surface in stacking order.
func (s *Surface) Ripples() []*Ripple {
	out := make([]*Ripple, len(s.ripples))
	copy(out, s.ripples)
	return out
}

// ActiveRipple returns the ripple receiving touch updates, or nil.
func (s *Surface) ActiveRipple() *Ripple {
	if s.active == 0 {
		return nil
	}
	for _, r := range s.ripples {
		if r.id == s.active {
			return r
		}
	}
	return nil
}

// IsAnimating reports whether any ripple is still on the surface.
func (s *Surface) IsAnimating() bool {
	return len(s.ripples) > 0
}

// Frames returns the presented state of every ripple at the current
// animation time, in stacking order.
func (s *Surface) Frames() []Frame {
	return s.FramesAt(animation.Now())
}

// FramesAt returns the presented state of every ripple at t.
func (s *Surface) FramesAt(t time.Time) []Frame {
	frames := make([]Frame, 0, len(s.ripples))
	for _, r := range s.ripples {
		frames = append(frames, r.PresentedAt(t))
	}
	return frames
}

// AddListener registers surface-level callbacks. Returns an unsubscribe function.
func (s *Surface) AddListener(l Listener) func() {
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, listenerEntry{id: id, listener: l})
	return func() {
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispose stops the surface ticker and drops listeners. Ripples still on
// the surface stop advancing.
func (s *Surface) Dispose() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	s.listeners = nil
	s.cancelWaiters = nil
}

func (s *Surface) ensureTicker() {
	if s.ticker == nil {
		s.ticker = animation.NewTicker(func(time.Duration) {
			s.Pump()
		})
	}
	s.ticker.Start()
}

// detach removes a finished ripple. Removal is by identity, so insertion
// order and newer ripples do not matter.
func (s *Surface) detach(r *Ripple) {
	for i, existing := range s.ripples {
		if existing == r {
			s.ripples = append(s.ripples[:i], s.ripples[i+1:]...)
			break
		}
	}
	if s.active == r.id {
		s.active = 0
	}

	remaining := s.cancelWaiters[:0]
	var done []*cancelWaiter
	for _, w := range s.cancelWaiters {
		delete(w.pending, r.id)
		if len(w.pending) == 0 {
			done = append(done, w)
			continue
		}
		remaining = append(remaining, w)
	}
	s.cancelWaiters = remaining
	for _, w := range done {
		w.completion()
	}
}

func (s *Surface) notify(r *Ripple, pick func(Listener) func(*Ripple)) {
	for _, entry := range append([]listenerEntry(nil), s.listeners...) {
		fn := pick(entry.listener)
		if fn == nil {
			continue
		}
		func() {
			defer errors.Recover("ripple.listener")
			fn(r)
		}()
	}
}

// guard wraps a caller-supplied callback so a panic inside it is reported
// instead of unwinding through the surface. A nil callback becomes a no-op.
func (s *Surface) guard(op string, fn func()) func() {
	return func() {
		if fn == nil {
			return
		}
		defer errors.Recover(op)
		fn()
	}
}

func validateSize(op string, size graphics.Size) error {
	if !graphics.RectFromSize(size).IsFinite() || size.Width < 0 || size.Height < 0 {
		return errors.Geometry(op, "invalid surface size %vx%v", size.Width, size.Height)
	}
	return nil
}

// surfaceObserver adapts a Surface to the Observer interface without
// exporting the callbacks on Surface itself.
type surfaceObserver struct {
	s *Surface
}

func (o surfaceObserver) RippleStartBegan(r *Ripple) {
	o.s.notify(r, func(l Listener) func(*Ripple) { return l.Started })
}

func (o surfaceObserver) RippleStartEnded(*Ripple) {}

func (o surfaceObserver) RippleEndBegan(*Ripple) {}

func (o surfaceObserver) RippleEnded(r *Ripple) {
	o.s.detach(r)
	o.s.notify(r, func(l Listener) func(*Ripple) { return l.Ended })
}
