package preview

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/ink/pkg/animation"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
	inktest "github.com/go-drift/ink/pkg/testing"
)

func newTestPreview(t *testing.T) (*Preview, tcell.SimulationScreen, *inktest.FakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(20, 11)
	t.Cleanup(screen.Fini)

	clk := inktest.NewFakeClock()
	prev := animation.SetClock(clk)

	s := ripple.NewSurface(graphics.Size{Width: 100, Height: 100})
	s.SetInkColor(graphics.RGB(0, 0, 255))
	t.Cleanup(func() {
		s.Dispose()
		animation.SetClock(prev)
	})
	resp := ripple.NewResponder(s, s.Bounds)
	return New(screen, resp), screen, clk
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestPreview_MouseDrivesRipple(t *testing.T) {
	p, _, clk := newTestPreview(t)

	p.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	r := p.Surface().ActiveRipple()
	if r == nil {
		t.Fatal("mouse press should start a ripple")
	}
	if want := (graphics.Offset{X: 52.5, Y: 55}); r.Anchor() != want {
		t.Errorf("anchor = %v, want %v", r.Anchor(), want)
	}

	p.HandleEvent(tcell.NewEventMouse(12, 5, tcell.Button1, tcell.ModNone))
	if p.Surface().ActiveRipple() != r {
		t.Error("drag should keep the same ripple active")
	}

	clk.Advance(600 * time.Millisecond)
	animation.StepTickers()
	p.HandleEvent(tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone))
	if r.Phase() != ripple.PhaseEnding {
		t.Errorf("release should end the ripple, got %v", r.Phase())
	}
}

func TestPreview_DrawTintsRippleCells(t *testing.T) {
	p, screen, clk := newTestPreview(t)

	p.Draw()
	white := tcell.NewRGBColor(255, 255, 255)
	if got := background(screen, 10, 5); got != white {
		t.Fatalf("idle cell should be white, got %v", got)
	}

	p.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	clk.Advance(200 * time.Millisecond)
	animation.StepTickers()
	p.Draw()

	got := background(screen, 10, 5)
	if got == white {
		t.Fatal("cell under the ripple should be tinted")
	}
	r, g, b := got.RGB()
	if b != 255 || r != 0 || g != 0 {
		t.Errorf("expected full ink at opacity 1, got %d,%d,%d", r, g, b)
	}
}

func TestPreview_Keys(t *testing.T) {
	p, _, _ := newTestPreview(t)

	if !p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone)) {
		t.Fatal("s should not quit")
	}
	if p.Surface().Style() != ripple.StyleUnbounded {
		t.Error("s should toggle the style")
	}

	p.HandleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone))
	p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	if p.Surface().ActiveRipple() != nil {
		t.Error("c should cancel every ripple")
	}

	if p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
	if p.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestPreview_StatusLine(t *testing.T) {
	p, screen, _ := newTestPreview(t)
	p.Draw()

	var line []rune
	for x := range 10 {
		ch, _, _, _ := screen.GetContent(x, 10)
		line = append(line, ch)
	}
	if got := string(line); got != " ripples: " {
		t.Errorf("status line starts %q", got)
	}
}

func TestPreview_PollEventsStopsWhenDone(t *testing.T) {
	p, screen, _ := newTestPreview(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); err != nil {
		t.Fatal(err)
	}

	// Nobody reads events, so only ctx can release the sender.
	events := make(chan tcell.Event)
	done := make(chan struct{})
	go func() {
		p.pollEvents(ctx, events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pollEvents blocked after ctx was done")
	}
	if _, ok := <-events; ok {
		t.Error("events should be closed")
	}
}
