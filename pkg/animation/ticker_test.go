package animation

import (
	"testing"
	"time"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func TestTicker_StepDeliversElapsed(t *testing.T) {
	clk := &stepClock{now: epoch}
	prev := SetClock(clk)
	defer SetClock(prev)

	var got []time.Duration
	ticker := NewTicker(func(elapsed time.Duration) {
		got = append(got, elapsed)
	})
	ticker.Start()
	defer ticker.Stop()

	clk.now = clk.now.Add(16 * time.Millisecond)
	StepTickers()
	clk.now = clk.now.Add(16 * time.Millisecond)
	StepTickers()

	if len(got) != 2 || got[0] != 16*time.Millisecond || got[1] != 32*time.Millisecond {
		t.Errorf("elapsed = %v, want [16ms 32ms]", got)
	}
}

func TestTicker_StopInsideCallback(t *testing.T) {
	var calls int
	var ticker *Ticker
	ticker = NewTicker(func(time.Duration) {
		calls++
		ticker.Stop()
	})
	ticker.Start()

	StepTickers()
	StepTickers()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if HasActiveTickers() {
		t.Error("expected no active tickers after stop")
	}
}

func TestStepTickers_StartOrder(t *testing.T) {
	var order []string
	var a, b, c *Ticker
	a = NewTicker(func(time.Duration) {
		order = append(order, "a")
		c.Stop()
	})
	b = NewTicker(func(time.Duration) { order = append(order, "b") })
	c = NewTicker(func(time.Duration) { order = append(order, "c") })
	defer a.Stop()
	defer b.Stop()

	b.Start()
	a.Start()
	c.Start()
	b.Start()

	if n := StepTickers(); n != 2 {
		t.Errorf("StepTickers() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Errorf("order = %v, want [b a]", order)
	}
	if c.IsActive() {
		t.Error("ticker stopped during the step should stay stopped")
	}
}
