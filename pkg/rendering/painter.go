package rendering

import (
	"image"

	"github.com/go-drift/ink/pkg/graphics"
	"github.com/go-drift/ink/pkg/ripple"
)

// PaintFrames draws ripple frames onto canvas in stacking order. Bounded
// surfaces clip to bounds; unbounded ripples may draw past them. Frames
// with nothing visible are skipped.
func PaintFrames(canvas Canvas, bounds graphics.Rect, style ripple.Style, frames []ripple.Frame) {
	canvas.Save()
	defer canvas.Restore()

	if style == ripple.StyleBounded {
		canvas.ClipRect(bounds)
	}
	canvas.Translate(bounds.Left, bounds.Top)
	for _, f := range frames {
		if f.Opacity <= 0 || f.Radius <= 0 {
			continue
		}
		paint := DefaultPaint(f.FillColor())
		if !paint.IsVisible() {
			continue
		}
		canvas.DrawPath(f.Path(), paint)
	}
}

// PaintSurface draws the presented state of every ripple on s.
func PaintSurface(canvas Canvas, bounds graphics.Rect, s *ripple.Surface) {
	PaintFrames(canvas, bounds, s.Style(), s.Frames())
}

// RenderOptions configures RenderFrames.
type RenderOptions struct {
	// Background fills the surface before ripples are drawn.
	Background graphics.Color

	// Padding surrounds the surface so unbounded ripples stay visible.
	Padding float64
}

// RenderFrames rasterizes frames for a surface of the given size into a new
// image. The surface sits at (Padding, Padding) in the result.
func RenderFrames(size graphics.Size, style ripple.Style, frames []ripple.Frame, opts RenderOptions) *image.RGBA {
	canvas := NewImageCanvas(graphics.Size{
		Width:  size.Width + 2*opts.Padding,
		Height: size.Height + 2*opts.Padding,
	})
	bounds := graphics.RectFromLTWH(opts.Padding, opts.Padding, size.Width, size.Height)

	canvas.Save()
	canvas.ClipRect(bounds)
	canvas.Clear(opts.Background)
	canvas.Restore()

	PaintFrames(canvas, bounds, style, frames)
	return canvas.Image()
}
