package ripple

import "time"

// Timeline constants. Visual parity depends on these exact values.
const (
	startDelay         = 83 * time.Millisecond
	growDuration       = 333 * time.Millisecond
	fadeInDuration     = 83 * time.Millisecond
	fadeToHalfBegin    = 250 * time.Millisecond
	fadeToHalfDuration = 167 * time.Millisecond
	startSpan          = 500 * time.Millisecond
	changeDuration     = 83 * time.Millisecond
	fadeOutDuration    = 250 * time.Millisecond

	// interruptDelay holds back change and end animations while the start
	// timeline is still running: fadeToHalfBegin + fadeToHalfDuration.
	interruptDelay = fadeToHalfBegin + fadeToHalfDuration
)

const (
	startingScale = 0.6
	halfOpacity   = 0.5

	initialRadiusFactor = 0.6
	finalRadiusPadding  = 10.0
)
