package animation

import (
	"sync"
	"time"
)

// running holds the started tickers in start order.
var (
	tickerMu sync.Mutex
	running  []*Ticker
)

// Ticker runs a frame callback while started. Each surface owns one and
// starts it when its first ripple appears.
//
// Nothing runs on its own goroutine: the host frame loop calls
// [StepTickers], which steps every started ticker in the order it was
// started. Surfaces sharing a loop therefore advance in a stable order.
type Ticker struct {
	callback func(elapsed time.Duration)
	active   bool
	start    time.Time
}

// NewTicker creates a stopped ticker. callback receives the time since the
// most recent Start.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start registers the ticker with the frame loop and resets its elapsed
// time. Starting a running ticker keeps its place and its start time.
func (t *Ticker) Start() {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if t.active {
		return
	}
	t.active = true
	t.start = Now()
	running = append(running, t)
}

// Stop unregisters the ticker. It may be called from inside the callback;
// a stopped ticker is skipped for the rest of the current step.
func (t *Ticker) Stop() {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if !t.active {
		return
	}
	t.active = false
	for i, other := range running {
		if other == t {
			running = append(running[:i], running[i+1:]...)
			break
		}
	}
}

// IsActive reports whether the ticker is registered.
func (t *Ticker) IsActive() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return t.active
}

// StepTickers runs one frame: every started ticker is called with the same
// clock reading. Tickers started by a callback are first called on the next
// step. It returns the number of callbacks run.
func StepTickers() int {
	tickerMu.Lock()
	frame := append([]*Ticker(nil), running...)
	tickerMu.Unlock()

	now := Now()
	stepped := 0
	for _, t := range frame {
		if !t.IsActive() || t.callback == nil {
			continue
		}
		t.callback(now.Sub(t.start))
		stepped++
	}
	return stepped
}

// HasActiveTickers reports whether any ticker is started.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(running) > 0
}
