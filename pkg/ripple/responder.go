package ripple

import (
	"github.com/go-drift/ink/pkg/errors"
	"github.com/go-drift/ink/pkg/gestures"
	"github.com/go-drift/ink/pkg/graphics"
)

// Responder connects a TouchTracker to a Surface: a press starts a ripple,
// drags update it, a release ends it and a cancelled gesture cancels every
// ripple on the surface.
//
// Pointer positions arrive in window space; the responder converts them to
// surface-local coordinates using the view bounds. Engine errors have no
// caller to return to here and are sent to errors.Report.
type Responder struct {
	surface    *Surface
	tracker    *gestures.TouchTracker
	viewBounds func() graphics.Rect
}

// NewResponder creates a responder for surface. viewBounds returns the
// surface's frame in window space.
func NewResponder(surface *Surface, viewBounds func() graphics.Rect) *Responder {
	r := &Responder{
		surface:    surface,
		viewBounds: viewBounds,
	}
	r.tracker = gestures.NewTouchTracker(viewBounds)
	r.tracker.OnBegin = r.begin
	r.tracker.OnChange = r.change
	r.tracker.OnEnd = r.end
	r.tracker.OnCancel = r.cancel
	return r
}

// Surface returns the driven surface.
func (r *Responder) Surface() *Surface { return r.surface }

// Tracker returns the gesture tracker, for tuning drag-out behavior.
func (r *Responder) Tracker() *gestures.TouchTracker { return r.tracker }

// HandlePointer feeds one raw pointer event through the tracker.
func (r *Responder) HandlePointer(event gestures.PointerEvent) {
	r.tracker.HandlePointer(event)
}

func (r *Responder) local(p graphics.Offset) graphics.Offset {
	if r.viewBounds == nil {
		return p
	}
	return p.Sub(r.viewBounds().TopLeft())
}

func (r *Responder) begin(p graphics.Offset) {
	if _, err := r.surface.StartRipple(r.local(p), nil); err != nil {
		errors.Report("ripple.Responder", err)
	}
}

func (r *Responder) change(p graphics.Offset) {
	if err := r.surface.ChangeRipple(r.local(p)); err != nil {
		errors.Report("ripple.Responder", err)
	}
}

func (r *Responder) end(graphics.Offset) {
	r.surface.EndRipple(true, nil)
}

func (r *Responder) cancel() {
	r.surface.CancelAllRipples(true, nil)
}
