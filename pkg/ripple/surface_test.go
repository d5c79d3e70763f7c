package ripple_test

import (
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
	inktest "github.com/go-drift/ink/pkg/testing"
)

type recordingHandler struct {
	errs   []*errors.InkError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.InkError)   { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(err *errors.PanicError) { h.panics = append(h.panics, err) }

func captureErrors(t *testing.T) *recordingHandler {
	h := &recordingHandler{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}

var center = graphics.Offset{X: 50, Y: 50}

func TestSurface_StartRipple(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	r, err := s.StartRipple(graphics.Offset{X: 10, Y: 10}, nil)
	if err != nil {
		t.Fatalf("StartRipple: %v", err)
	}
	if s.ActiveRipple() != r {
		t.Error("new ripple should be active")
	}
	if r.Color() != graphics.DefaultInkColor {
		t.Errorf("expected default ink color, got %s", r.Color().Hex())
	}
	if r.Path() == nil || r.Path().IsEmpty() {
		t.Error("expected a path after start")
	}
	if r.InitialRadius() > r.FinalRadius() {
		t.Error("initial radius exceeds final radius")
	}
}

func TestSurface_StartRippleWithColor(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	red := graphics.RGBA8(255, 0, 0, 0x40)

	r, err := h.Surface().StartRippleWithColor(center, red, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Color() != red {
		t.Errorf("expected %s, got %s", red.Hex(), r.Color().Hex())
	}
}

func TestSurface_NonFiniteInput(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	bad := []graphics.Offset{
		{X: math.NaN(), Y: 0},
		{X: 0, Y: math.Inf(1)},
	}
	for _, p := range bad {
		_, err := s.StartRipple(p, nil)
		var inkErr *errors.InkError
		if !stderrors.As(err, &inkErr) || inkErr.Kind != errors.KindGeometry {
			t.Errorf("StartRipple(%v): expected geometry error, got %v", p, err)
		}
	}
	if len(s.Ripples()) != 0 {
		t.Error("rejected input should not create ripples")
	}

	if _, err := s.StartRipple(center, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.ChangeRipple(graphics.Offset{X: math.NaN()}); err == nil {
		t.Error("ChangeRipple should reject NaN")
	}
	if err := s.SetSize(graphics.Size{Width: math.Inf(1), Height: 10}); err == nil {
		t.Error("SetSize should reject infinite sizes")
	}
	if err := s.SetSize(graphics.Size{Width: -1, Height: 10}); err == nil {
		t.Error("SetSize should reject negative sizes")
	}
}

func TestSurface_ChangeWithoutActive(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	if err := h.Surface().ChangeRipple(center); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestSurface_EndWithoutActive(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	called := false
	h.Surface().EndRipple(true, func() { called = true })
	if !called {
		t.Error("completion should run immediately without an active ripple")
	}
}

func TestSurface_OverlappingRipples(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	first, _ := s.StartRipple(graphics.Offset{X: 10, Y: 10}, nil)
	h.Advance(600 * time.Millisecond)
	s.EndRipple(true, nil)

	h.Advance(100 * time.Millisecond)
	second, _ := s.StartRipple(graphics.Offset{X: 90, Y: 90}, nil)

	if first == second || first.ID() == second.ID() {
		t.Fatal("a new press must create a new ripple")
	}
	if got := s.Ripples(); len(got) != 2 || got[0] != first || got[1] != second {
		t.Fatalf("expected both ripples in stacking order, got %d", len(got))
	}
	if s.ActiveRipple() != second {
		t.Error("second ripple should be active")
	}

	// first fades out at 600ms + 250ms.
	h.Advance(150 * time.Millisecond)
	if got := s.Ripples(); len(got) != 1 || got[0] != second {
		t.Fatal("expected only the second ripple after the first fades out")
	}
	if s.ActiveRipple() != second {
		t.Error("removing an older ripple must not clear the active one")
	}
	if frames := s.Frames(); len(frames) != 1 || frames[0].ID != second.ID() {
		t.Errorf("unexpected frames %+v", frames)
	}
}

func TestSurface_NewPressReleasesActiveRipple(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	a, _ := s.StartRipple(graphics.Offset{X: 10, Y: 10}, nil)
	h.Advance(100 * time.Millisecond)
	b, _ := s.StartRipple(graphics.Offset{X: 90, Y: 90}, nil)

	if a.Phase() != ripple.PhaseEnding {
		t.Fatalf("previous ripple phase = %v, want ending", a.Phase())
	}
	if s.ActiveRipple() != b {
		t.Fatal("the new ripple should be active")
	}
	accepting := 0
	for _, r := range s.Ripples() {
		if p := r.Phase(); p == ripple.PhaseStarting || p == ripple.PhaseActiveHold {
			accepting++
		}
	}
	if accepting != 1 {
		t.Errorf("%d ripples accept touches, want 1", accepting)
	}

	// a was released at its own press point during its start span: the
	// fade waits out the start timeline and begins from the half floor.
	fade, _ := a.FadeOut()
	if a.EndDelay() != 417*time.Millisecond || fade.From != 0.5 {
		t.Errorf("unexpected fade for a: delay %v from %v", a.EndDelay(), fade.From)
	}

	s.EndRipple(true, nil)
	if err := h.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if a.Phase() != ripple.PhaseRemoved || b.Phase() != ripple.PhaseRemoved {
		t.Errorf("phases after settle: a=%v b=%v, want removed", a.Phase(), b.Phase())
	}
	if s.IsAnimating() {
		t.Error("surface still animating after every ripple was removed")
	}
}

func TestSurface_RemovalBeforeFadeOutEnds(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	if _, err := s.StartRipple(center, nil); err != nil {
		t.Fatal(err)
	}
	h.Advance(600 * time.Millisecond)
	s.EndRipple(true, nil)

	h.Advance(249 * time.Millisecond)
	if len(s.Ripples()) != 1 {
		t.Fatal("ripple removed before its fade-out completed")
	}
	h.Advance(time.Millisecond)
	if len(s.Ripples()) != 0 {
		t.Fatal("ripple should be removed once its fade-out completes")
	}
}

func TestSurface_CancelAllRipples(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	a, _ := s.StartRipple(graphics.Offset{X: 10, Y: 10}, nil)
	h.Advance(600 * time.Millisecond)
	s.EndRipple(true, nil)
	fadeA, _ := a.FadeOut()

	h.Advance(50 * time.Millisecond)
	b, _ := s.StartRipple(graphics.Offset{X: 90, Y: 90}, nil)

	done := 0
	s.CancelAllRipples(true, func() { done++ })

	if s.ActiveRipple() != nil {
		t.Error("cancel should clear the active ripple")
	}
	if b.Phase() != ripple.PhaseEnding {
		t.Errorf("expected b ending, got %v", b.Phase())
	}
	// b is inside its start span, so the fade waits and starts fully visible.
	fadeB, _ := b.FadeOut()
	if b.EndDelay() != 417*time.Millisecond || fadeB.From != 1 {
		t.Errorf("unexpected fade for b: delay %v from %v", b.EndDelay(), fadeB.From)
	}
	if again, _ := a.FadeOut(); !again.Begin.Equal(fadeA.Begin) {
		t.Error("an ending ripple should keep its schedule")
	}

	h.Advance(300 * time.Millisecond)
	if done != 0 {
		t.Fatal("completion ran before every ripple was removed")
	}
	if err := h.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if done != 1 {
		t.Errorf("completion ran %d times, want 1", done)
	}
}

func TestSurface_CancelAllRipplesEmpty(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	called := false
	h.Surface().CancelAllRipples(false, func() { called = true })
	if !called {
		t.Error("completion should run immediately on an empty surface")
	}
}

func TestSurface_StartCompletion(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	count := 0
	if _, err := h.Surface().StartRipple(center, func() { count++ }); err != nil {
		t.Fatal(err)
	}
	h.Advance(499 * time.Millisecond)
	if count != 0 {
		t.Fatal("start completion ran early")
	}
	h.Advance(time.Millisecond)
	h.Advance(time.Second)
	if count != 1 {
		t.Errorf("start completion ran %d times, want 1", count)
	}
}

func TestSurface_Listeners(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	var started, ended []ripple.ID
	unsubscribe := s.AddListener(ripple.Listener{
		Started: func(r *ripple.Ripple) { started = append(started, r.ID()) },
		Ended: func(r *ripple.Ripple) {
			if len(s.Ripples()) != 0 {
				t.Error("ripple should be detached before Ended fires")
			}
			ended = append(ended, r.ID())
		},
	})

	r, _ := s.StartRipple(center, nil)
	s.EndRipple(false, nil)
	if err := h.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if len(started) != 1 || started[0] != r.ID() || len(ended) != 1 || ended[0] != r.ID() {
		t.Fatalf("unexpected events started=%v ended=%v", started, ended)
	}

	unsubscribe()
	s.StartRipple(center, nil)
	if len(started) != 1 {
		t.Error("unsubscribed listener still notified")
	}
}

func TestSurface_PanickingCallbackRecovered(t *testing.T) {
	rec := captureErrors(t)
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	s.AddListener(ripple.Listener{Started: func(*ripple.Ripple) { panic("boom") }})
	if _, err := s.StartRipple(center, func() { panic("late boom") }); err != nil {
		t.Fatal(err)
	}
	h.Advance(500 * time.Millisecond)

	if len(rec.panics) != 2 {
		t.Fatalf("expected 2 recovered panics, got %d", len(rec.panics))
	}
	if s.ActiveRipple() == nil {
		t.Error("surface should keep working after a callback panic")
	}
}

func TestSurface_SetMaxRippleRadius(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{24, 24},
		{0, 0},
		{-5, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		h := inktest.NewHarness()
		s := h.Surface()
		s.SetMaxRippleRadius(tt.in)
		if got := s.MaxRippleRadius(); got != tt.want {
			t.Errorf("SetMaxRippleRadius(%v) stored %v, want %v", tt.in, got, tt.want)
		}
		r, _ := s.StartRipple(center, nil)
		wantRadius := r.FinalRadius()
		if tt.want > 0 {
			wantRadius = tt.want
		}
		if r.Radius() != wantRadius {
			t.Errorf("radius = %v, want %v", r.Radius(), wantRadius)
		}
		h.Cleanup()
	}
}

func TestSurface_Setters(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()

	s.SetInkColor(graphics.ColorBlue)
	s.SetStyle(ripple.StyleUnbounded)
	if s.InkColor() != graphics.ColorBlue || s.Style() != ripple.StyleUnbounded {
		t.Error("setters not applied")
	}
	if err := s.SetSize(graphics.Size{Width: 200, Height: 40}); err != nil {
		t.Fatal(err)
	}
	r, _ := s.StartRipple(center, nil)
	if r.Color() != graphics.ColorBlue {
		t.Error("new ripples should use the surface ink color")
	}
	if b := r.Bounds(); b.Width() != 200 || b.Height() != 40 {
		t.Errorf("unexpected ripple bounds %v", b)
	}
	if ripple.StyleBounded.String() != "bounded" || ripple.Style(9).String() != "Style(9)" {
		t.Error("unexpected style strings")
	}
}

func TestSurface_Dispose(t *testing.T) {
	h := inktest.NewHarnessWithT(t)
	s := h.Surface()
	s.StartRipple(center, nil)
	s.EndRipple(false, nil)
	s.Dispose()

	h.Advance(time.Second)
	if len(s.Ripples()) != 1 {
		t.Error("a disposed surface should stop advancing")
	}
}
