package rendering

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-drift/ink/pkg/graphics"
)

// ImageCanvas rasterizes drawing commands into an RGBA image with
// anti-aliased coverage. It supports translation and rectangular clips.
type ImageCanvas struct {
	dst   *image.RGBA
	state canvasState
	stack []canvasState
}

type canvasState struct {
	origin graphics.Offset
	clip   graphics.Rect
}

// NewImageCanvas allocates a transparent canvas of the given size. The size
// is rounded up to whole pixels.
func NewImageCanvas(size graphics.Size) *ImageCanvas {
	w := int(math.Ceil(math.Max(size.Width, 0)))
	h := int(math.Ceil(math.Max(size.Height, 0)))
	return NewImageCanvasFor(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewImageCanvasFor draws into an existing image.
func NewImageCanvasFor(dst *image.RGBA) *ImageCanvas {
	b := dst.Bounds()
	return &ImageCanvas{
		dst: dst,
		state: canvasState{
			origin: graphics.Offset{X: float64(b.Min.X), Y: float64(b.Min.Y)},
			clip:   graphics.RectFromLTWH(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy())),
		},
	}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.dst
}

// Size returns the canvas dimensions in pixels.
func (c *ImageCanvas) Size() graphics.Size {
	b := c.dst.Bounds()
	return graphics.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *ImageCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *ImageCanvas) Translate(dx, dy float64) {
	c.state.origin = c.state.origin.Add(graphics.Offset{X: dx, Y: dy})
}

func (c *ImageCanvas) ClipRect(rect graphics.Rect) {
	abs := rect.Translate(c.state.origin.X, c.state.origin.Y)
	c.state.clip = c.state.clip.Intersect(abs)
}

// Clear fills the current clip with color, replacing existing pixels.
func (c *ImageCanvas) Clear(col graphics.Color) {
	r := c.clipPixels()
	if r.Empty() {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

// DrawPath fills path with paint, clipped to the current clip rect.
func (c *ImageCanvas) DrawPath(path *graphics.Path, paint Paint) {
	if path == nil || path.IsEmpty() || !paint.IsVisible() {
		return
	}
	r := c.clipPixels()
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	if paint.BlendMode == BlendModeSrc {
		z.DrawOp = draw.Src
	}
	// Rasterizer space starts at the clip's top-left pixel.
	ox := c.state.origin.X - float64(r.Min.X)
	oy := c.state.origin.Y - float64(r.Min.Y)
	pt := func(x, y float64) (float32, float32) {
		return float32(x + ox), float32(y + oy)
	}

	open := false
	for _, cmd := range path.Commands {
		a := cmd.Args
		switch cmd.Op {
		case graphics.PathOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(a[0], a[1]))
			open = true
		case graphics.PathOpLineTo:
			z.LineTo(pt(a[0], a[1]))
		case graphics.PathOpCubicTo:
			x1, y1 := pt(a[0], a[1])
			x2, y2 := pt(a[2], a[3])
			x3, y3 := pt(a[4], a[5])
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		case graphics.PathOpClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}

	z.Draw(c.dst, r, image.NewUniform(paint.Color.NRGBA()), image.Point{})
}

// clipPixels returns the current clip as whole pixels within the image.
func (c *ImageCanvas) clipPixels() image.Rectangle {
	clip := c.state.clip
	if !clip.IsFinite() || clip.IsEmpty() {
		return image.Rectangle{}
	}
	r := image.Rect(
		int(math.Floor(clip.Left)), int(math.Floor(clip.Top)),
		int(math.Ceil(clip.Right)), int(math.Ceil(clip.Bottom)),
	)
	return r.Intersect(c.dst.Bounds())
}
