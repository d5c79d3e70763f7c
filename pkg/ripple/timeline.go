package ripple

import (
	"fmt"
	"time"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/graphics"
)

// ID identifies a ripple within its surface. IDs are never reused, and the
// zero ID means "no ripple".
type ID uint64

// Phase is the lifecycle state of a ripple.
//
//	Idle ──► Starting ──► ActiveHold ──► Ending ──► Removed
//	            └────────────────────────┘
//
// Starting and ActiveHold both accept Change and End, so callers should
// treat either as "pressed". A started ripple reports Starting, not
// ActiveHold, until its 500ms touch-down span elapses.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseStarting
	PhaseActiveHold
	PhaseEnding
	PhaseRemoved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseStarting:
		return "starting"
	case PhaseActiveHold:
		return "active_hold"
	case PhaseEnding:
		return "ending"
	case PhaseRemoved:
		return "removed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// acceptsTouches reports whether Change and End apply in this phase.
func (p Phase) acceptsTouches() bool {
	return p == PhaseStarting || p == PhaseActiveHold
}

// Ripple is one grow-and-fade feedback instance. Its presented state is
// derived from three animation tracks evaluated against the clock.
//
// Ripples are created and driven by a Surface; the exported methods only
// read state.
type Ripple struct {
	id     ID
	phase  Phase
	bounds graphics.Rect
	anchor graphics.Offset
	color  graphics.Color

	initialRadius float64
	finalRadius   float64
	radius        float64
	path          *graphics.Path

	startTime        time.Time
	startPhaseActive bool
	endDelay         time.Duration
	fadeOutEnd       time.Time

	opacity  *animation.Track[float64]
	scale    *animation.Track[float64]
	position *animation.Track[graphics.Offset]

	observer    Observer
	onStartDone func()
	onEndDone   func()
}

func newRipple(id ID, size graphics.Size, color graphics.Color, maxRadius float64, observer Observer) *Ripple {
	initial, final := Radii(size)
	return &Ripple{
		id:            id,
		phase:         PhaseIdle,
		bounds:        graphics.RectFromSize(size),
		color:         color,
		initialRadius: initial,
		finalRadius:   final,
		radius:        effectiveRadius(final, maxRadius),
		opacity:       animation.NewTrack(0.0, animation.LerpFloat64),
		scale:         animation.NewTrack(startingScale, animation.LerpFloat64),
		position:      animation.NewTrack(graphics.Offset{}, animation.LerpOffset),
		observer:      observer,
	}
}

// start schedules the touch-down timeline anchored at p. All segments share
// the reference time now.
func (r *Ripple) start(now time.Time, p graphics.Offset, completion func()) {
	if r.phase != PhaseIdle {
		return
	}
	center := r.bounds.Center()
	r.anchor = p
	r.path = graphics.NewCirclePath(center, r.radius)
	r.startTime = now
	r.startPhaseActive = true
	r.onStartDone = completion
	r.phase = PhaseStarting

	growBegin := now.Add(startDelay)
	r.scale.Append(animation.Segment[float64]{
		Begin: growBegin, Duration: growDuration,
		From: startingScale, To: 1, Curve: animation.Standard,
	})
	r.position.SetBase(p)
	r.position.Append(animation.Segment[graphics.Offset]{
		Begin: growBegin, Duration: growDuration,
		From: p, To: center, Curve: animation.Standard,
	})
	r.opacity.Append(animation.Segment[float64]{
		Begin: growBegin, Duration: fadeInDuration,
		From: 0, To: 1, Curve: animation.Linear,
	})
	r.opacity.Append(animation.Segment[float64]{
		Begin: now.Add(fadeToHalfBegin), Duration: fadeToHalfDuration,
		From: 1, To: halfOpacity, Curve: animation.Linear,
	})

	if r.observer != nil {
		r.observer.RippleStartBegan(r)
	}
}

// change fades toward half opacity when p is inside the ripple bounds and
// toward transparent otherwise, starting from the presented opacity.
func (r *Ripple) change(now time.Time, p graphics.Offset) {
	r.advance(now)
	if !r.phase.acceptsTouches() {
		return
	}
	target := 0.0
	if r.bounds.Contains(p) {
		target = halfOpacity
	}
	begin := now
	if r.startPhaseActive {
		begin = begin.Add(interruptDelay)
	}
	r.opacity.Append(animation.Segment[float64]{
		Begin: begin, Duration: changeDuration,
		From: r.opacity.ValueAt(now), To: target, Curve: animation.Linear,
	})
	r.opacity.SetBase(target)
}

// end schedules the fade-out. When animated is false the fade still runs
// but never waits for the start timeline.
func (r *Ripple) end(now time.Time, p graphics.Offset, animated bool, completion func()) {
	r.advance(now)
	if !r.phase.acceptsTouches() {
		return
	}
	r.endDelay = 0
	if r.startPhaseActive && animated {
		r.endDelay = interruptDelay
	}

	from := fadeOutFrom(r.opacity.ValueAt(now), r.bounds.Contains(p))
	begin := now.Add(r.endDelay)
	r.opacity.Append(animation.Segment[float64]{
		Begin: begin, Duration: fadeOutDuration,
		From: from, To: 0, Curve: animation.Linear,
	})
	r.opacity.SetBase(0)
	r.fadeOutEnd = begin.Add(fadeOutDuration)
	r.onEndDone = completion
	r.phase = PhaseEnding

	if r.observer != nil {
		r.observer.RippleEndBegan(r)
	}
}

// fadeOutFrom applies the floor rules to a presented opacity. An exact zero
// is only read before the fade-in has begun and is treated as fully
// visible; anything else below half is raised to half. A release outside
// the ripple fades from nothing.
func fadeOutFrom(presented float64, inside bool) float64 {
	o := presented
	if o == 0 {
		o = 1
	} else if o < halfOpacity {
		o = halfOpacity
	}
	if !inside {
		o = 0
	}
	return o
}

// advance processes every milestone reached by now. It is idempotent and
// is called before each state change so decisions never see stale flags.
func (r *Ripple) advance(now time.Time) {
	if r.phase == PhaseIdle || r.phase == PhaseRemoved {
		return
	}
	if r.startPhaseActive && !now.Before(r.startTime.Add(startSpan)) {
		r.finishStart()
	}
	if r.phase == PhaseEnding && !now.Before(r.fadeOutEnd) {
		r.finishEnd()
		return
	}
	r.opacity.Prune(now)
}

func (r *Ripple) finishStart() {
	r.startPhaseActive = false
	if r.phase == PhaseStarting {
		r.phase = PhaseActiveHold
	}
	if r.observer != nil {
		r.observer.RippleStartEnded(r)
	}
	if done := r.onStartDone; done != nil {
		r.onStartDone = nil
		done()
	}
}

func (r *Ripple) finishEnd() {
	if r.startPhaseActive {
		r.finishStart()
	}
	if r.observer != nil {
		r.observer.RippleEnded(r)
	}
	r.phase = PhaseRemoved
	if done := r.onEndDone; done != nil {
		r.onEndDone = nil
		done()
	}
}

// ID returns the ripple's surface-unique identifier.
func (r *Ripple) ID() ID { return r.id }

// Phase returns the lifecycle phase.
func (r *Ripple) Phase() Phase { return r.phase }

// Anchor returns the touch point the ripple started from.
func (r *Ripple) Anchor() graphics.Offset { return r.anchor }

// Color returns the fill color.
func (r *Ripple) Color() graphics.Color { return r.color }

// Bounds returns the surface bounds the ripple was created for.
func (r *Ripple) Bounds() graphics.Rect { return r.bounds }

// InitialRadius returns half the surface diagonal scaled by 0.6.
func (r *Ripple) InitialRadius() float64 { return r.initialRadius }

// FinalRadius returns half the surface diagonal plus 10.
func (r *Ripple) FinalRadius() float64 { return r.finalRadius }

// Radius returns the radius of the drawn shape: the surface's max radius
// override when set, otherwise FinalRadius.
func (r *Ripple) Radius() float64 { return r.radius }

// Path returns the model shape, a circle around the surface center. It is
// nil until the ripple has started.
func (r *Ripple) Path() *graphics.Path { return r.path }

// StartTime returns the reference time of the touch-down timeline.
func (r *Ripple) StartTime() time.Time { return r.startTime }

// StartPhaseActive reports whether the touch-down span had not elapsed at
// the last time the ripple was advanced.
func (r *Ripple) StartPhaseActive() bool { return r.startPhaseActive }

// EndDelay returns the delay applied to the fade-out.
func (r *Ripple) EndDelay() time.Duration { return r.endDelay }

// OpacityAt returns the presented opacity at t.
func (r *Ripple) OpacityAt(t time.Time) float64 { return r.opacity.ValueAt(t) }

// OpacitySegments returns the opacity segments still scheduled.
func (r *Ripple) OpacitySegments() []animation.Segment[float64] { return r.opacity.Segments() }

// FadeOut returns the scheduled fade-out segment once the ripple is ending.
func (r *Ripple) FadeOut() (animation.Segment[float64], bool) {
	if r.phase != PhaseEnding && r.phase != PhaseRemoved {
		return animation.Segment[float64]{}, false
	}
	return r.opacity.Last()
}

// Frame is the presented state of a ripple at one instant.
type Frame struct {
	ID      ID
	Phase   Phase
	Center  graphics.Offset
	Radius  float64
	Opacity float64
	Color   graphics.Color
}

// Path returns the presented circle.
func (f Frame) Path() *graphics.Path {
	return graphics.NewCirclePath(f.Center, f.Radius)
}

// FillColor returns the ripple color with the presented opacity applied.
func (f Frame) FillColor() graphics.Color {
	return f.Color.ScaleAlpha(f.Opacity)
}

// PresentedAt evaluates every track at t.
func (r *Ripple) PresentedAt(t time.Time) Frame {
	return Frame{
		ID:      r.id,
		Phase:   r.phase,
		Center:  r.position.ValueAt(t),
		Radius:  r.radius * r.scale.ValueAt(t),
		Opacity: r.opacity.ValueAt(t),
		Color:   r.color,
	}
}
