// Package animation provides the timing primitives used by the ripple engine.
//
// # Core Components
//
//   - [Clock]: the package-level time source. Tests swap it with SetClock.
//
//   - [Ticker]: a per-frame callback, advanced by the host frame loop through
//     [StepTickers].
//
//   - [Segment] and [Track]: explicit value curves. A Track holds the segments
//     scheduled for one animated property; its presented value at time t is the
//     newest segment that has begun by t, evaluated at t. Reading a property
//     mid-flight is therefore a pure function of the schedule and the clock.
//
//   - [Curve]: easing functions, including [Standard] and [CubicBezier].
//
// # Basic Usage
//
//	opacity := animation.NewTrack(0.0, animation.LerpFloat64)
//	now := animation.Now()
//	opacity.Append(animation.Segment[float64]{
//	    Begin:    now,
//	    Duration: 250 * time.Millisecond,
//	    From:     opacity.ValueAt(now),
//	    To:       0,
//	    Curve:    animation.Linear,
//	})
package animation
