package rendering

import (
	"fmt"

	"github.com/go-drift/ink/pkg/graphics"
)

// BlendMode controls how a fill is composited onto the canvas.
type BlendMode int

const (
	// BlendModeSrcOver draws the fill over existing pixels.
	BlendModeSrcOver BlendMode = iota

	// BlendModeSrc replaces existing pixels inside the shape.
	BlendModeSrc
)

// String returns a human-readable representation of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendModeSrcOver:
		return "src_over"
	case BlendModeSrc:
		return "src"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// Paint describes how a path is filled.
type Paint struct {
	Color     graphics.Color
	BlendMode BlendMode
}

// DefaultPaint returns a source-over paint with the given color.
func DefaultPaint(color graphics.Color) Paint {
	return Paint{Color: color}
}

// IsVisible reports whether drawing with this paint can change a pixel.
func (p Paint) IsVisible() bool {
	_, _, _, a := p.Color.Components()
	return a > 0 || p.BlendMode == BlendModeSrc
}
