package ripple

// Observer receives a ripple's animation milestones. The surface installs
// one on every ripple it creates and uses RippleEnded to detach finished
// ripples.
type Observer interface {
	// RippleStartBegan fires when the touch-down timeline is scheduled.
	RippleStartBegan(r *Ripple)
	// RippleStartEnded fires once the 500ms touch-down span has elapsed.
	RippleStartEnded(r *Ripple)
	// RippleEndBegan fires when the fade-out is scheduled.
	RippleEndBegan(r *Ripple)
	// RippleEnded fires when the fade-out completes. The ripple is
	// Removed right after observers return.
	RippleEnded(r *Ripple)
}

// Listener is a set of optional callbacks for surface-level ripple events.
// Nil fields are skipped.
type Listener struct {
	// Started is called when a ripple begins its touch-down animation.
	Started func(r *Ripple)
	// Ended is called when a ripple has faded out and is being detached.
	Ended func(r *Ripple)
}
