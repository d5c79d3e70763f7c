package animation

import "time"

// Segment is one scheduled transition of an animated property: it moves
// from From to To over Duration, starting at Begin.
//
// Segments fill forwards: once finished they keep presenting To until a
// later segment on the same Track takes over. Before Begin a segment has no
// effect.
type Segment[T any] struct {
	Begin    time.Time
	Duration time.Duration
	From     T
	To       T
	Curve    Curve
}

// End returns the time at which the segment reaches To.
func (s Segment[T]) End() time.Time {
	return s.Begin.Add(s.Duration)
}

// Progress returns the curved progress of the segment at now, clamped to [0, 1].
func (s Segment[T]) Progress(now time.Time) float64 {
	if now.Before(s.Begin) {
		return 0
	}
	if s.Duration <= 0 || !now.Before(s.End()) {
		return 1
	}
	p := float64(now.Sub(s.Begin)) / float64(s.Duration)
	if s.Curve != nil {
		p = s.Curve(p)
	}
	return p
}

// Track is the ordered list of segments scheduled for one property, plus
// the model value presented when no segment applies.
//
// Segments are only ever appended. The presented value at a time t is the
// value of the most recently appended segment that has begun by t; this
// mirrors a compositor where newer animations render over older ones.
type Track[T any] struct {
	base     T
	lerp     Lerp[T]
	segments []Segment[T]
}

// NewTrack creates a track presenting base until a segment begins.
func NewTrack[T any](base T, lerp Lerp[T]) *Track[T] {
	return &Track[T]{base: base, lerp: lerp}
}

// Base returns the model value.
func (tr *Track[T]) Base() T {
	return tr.base
}

// SetBase replaces the model value. Scheduled segments are untouched.
func (tr *Track[T]) SetBase(v T) {
	tr.base = v
}

// Append schedules a segment after every segment already on the track.
func (tr *Track[T]) Append(seg Segment[T]) {
	tr.segments = append(tr.segments, seg)
}

// ValueAt evaluates the presented value at now.
func (tr *Track[T]) ValueAt(now time.Time) T {
	for i := len(tr.segments) - 1; i >= 0; i-- {
		seg := tr.segments[i]
		if now.Before(seg.Begin) {
			continue
		}
		return tr.lerp(seg.From, seg.To, seg.Progress(now))
	}
	return tr.base
}

// Segments returns a copy of the scheduled segments in append order.
func (tr *Track[T]) Segments() []Segment[T] {
	out := make([]Segment[T], len(tr.segments))
	copy(out, tr.segments)
	return out
}

// Last returns the most recently appended segment.
func (tr *Track[T]) Last() (Segment[T], bool) {
	if len(tr.segments) == 0 {
		var zero Segment[T]
		return zero, false
	}
	return tr.segments[len(tr.segments)-1], true
}

// Settled reports whether every segment has finished by now.
func (tr *Track[T]) Settled(now time.Time) bool {
	for _, seg := range tr.segments {
		if now.Before(seg.End()) {
			return false
		}
	}
	return true
}

// Prune drops segments that can never be presented again at or after now:
// everything older than the newest segment that has already begun.
// Time only moves forward, so pruning never changes a future ValueAt.
func (tr *Track[T]) Prune(now time.Time) {
	for i := len(tr.segments) - 1; i > 0; i-- {
		if !now.Before(tr.segments[i].Begin) {
			tr.segments = append(tr.segments[:0], tr.segments[i:]...)
			return
		}
	}
}
