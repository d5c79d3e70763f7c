// Package ripple implements the touch ripple animation engine.
//
// A [Surface] owns every ripple drawn on one interactive area. Each touch
// press starts a new [Ripple] whose timeline runs independently of all
// others:
//
//	t0          +83ms                 +250ms        +417ms  +500ms
//	│  wait     │ grow 0.6→1.0, travel anchor→center (333ms) │
//	│           │ fade in 0→1 (83ms)   │ fade 1→0.5 (167ms) │
//
// Only the newest ripple is active. Drags and the release are routed to
// it; older ripples keep fading and are detached by the surface once their
// fade-out completes.
//
// Nothing here blocks. Operations append animation segments against the
// clock in package animation and return; completion is observed when the
// surface is pumped, normally by its ticker from animation.StepTickers.
package ripple
