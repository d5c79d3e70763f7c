package script

import (
	"sync"
	"time"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
)

// Epoch is the animation time at which playback starts.
var Epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultFPS is the frame rate used when Player.FPS is unset.
const DefaultFPS = 60

// Frame is the surface state at one playback instant.
type Frame struct {
	Index   int
	At      time.Duration
	Ripples []ripple.Frame
}

// Player replays a script through a responder on a stepped clock.
//
// Play installs its own animation clock for the duration of the call, so
// only one Player may run at a time.
type Player struct {
	Responder *ripple.Responder
	FPS       int

	// OnFrame, if set, receives every rendered frame.
	OnFrame func(Frame)
}

// Trace records what each ripple did during playback.
type Trace struct {
	Ripples []*RippleTrace
	Frames  int
}

// RippleTrace is the timeline of one ripple. Times are offsets from the
// start of playback.
type RippleTrace struct {
	ID        ripple.ID
	Anchor    graphics.Offset
	Started   time.Duration
	EndDelay  time.Duration
	Removed   bool
	RemovedAt time.Duration
	Opacity   []animation.Segment[float64]
}

// Play runs the script to its end and returns the trace. Steps are
// delivered at their exact times; frames are pumped at FPS in between.
func (p *Player) Play(s *Script) (*Trace, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	fps := p.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	interval := time.Second / time.Duration(fps)

	clk := &stepClock{now: Epoch}
	prev := animation.SetClock(clk)
	defer animation.SetClock(prev)

	surface := p.Responder.Surface()
	rec := newRecorder()
	unsubscribe := surface.AddListener(ripple.Listener{
		Started: func(r *ripple.Ripple) { rec.started(r, clk.since()) },
		Ended:   func(r *ripple.Ripple) { rec.ended(r, clk.since()) },
	})
	defer unsubscribe()

	end := s.End()
	next := 0
	frame := 0
	for at := time.Duration(0); at <= end; at += interval {
		for next < len(s.Steps) && s.Steps[next].At <= at {
			step := s.Steps[next]
			clk.set(step.At)
			p.Responder.HandlePointer(step.Event())
			animation.StepTickers()
			rec.capture(surface)
			next++
		}
		clk.set(at)
		animation.StepTickers()
		rec.capture(surface)
		if p.OnFrame != nil {
			p.OnFrame(Frame{Index: frame, At: at, Ripples: surface.Frames()})
		}
		frame++
	}

	return &Trace{Ripples: rec.order, Frames: frame}, nil
}

type recorder struct {
	byID  map[ripple.ID]*RippleTrace
	order []*RippleTrace
}

func newRecorder() *recorder {
	return &recorder{byID: make(map[ripple.ID]*RippleTrace)}
}

func (r *recorder) started(rp *ripple.Ripple, at time.Duration) {
	t := &RippleTrace{ID: rp.ID(), Anchor: rp.Anchor(), Started: at}
	r.byID[rp.ID()] = t
	r.order = append(r.order, t)
	r.merge(t, rp)
}

func (r *recorder) ended(rp *ripple.Ripple, at time.Duration) {
	if t := r.byID[rp.ID()]; t != nil {
		r.merge(t, rp)
		t.Removed = true
		t.RemovedAt = at
	}
}

// capture merges the segments currently scheduled on every ripple. Segments
// are never mutated once appended, so equality identifies repeats.
func (r *recorder) capture(s *ripple.Surface) {
	for _, rp := range s.Ripples() {
		if t := r.byID[rp.ID()]; t != nil {
			r.merge(t, rp)
		}
	}
}

func (r *recorder) merge(t *RippleTrace, rp *ripple.Ripple) {
	t.EndDelay = rp.EndDelay()
	for _, seg := range rp.OpacitySegments() {
		if !containsSegment(t.Opacity, seg) {
			t.Opacity = append(t.Opacity, seg)
		}
	}
}

func containsSegment(list []animation.Segment[float64], seg animation.Segment[float64]) bool {
	for _, s := range list {
		if s.Begin.Equal(seg.Begin) && s.Duration == seg.Duration && s.From == seg.From && s.To == seg.To {
			return true
		}
	}
	return false
}

// stepClock is the animation clock during playback.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) set(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch.Add(offset)
}

func (c *stepClock) since() time.Duration {
	return c.Now().Sub(Epoch)
}
