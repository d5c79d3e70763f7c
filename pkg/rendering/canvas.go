package rendering

import "github.com/go-drift/ink/pkg/graphics"

// Canvas receives ripple drawing commands.
type Canvas interface {
	// Save pushes the current translation and clip state.
	Save()

	// Restore pops the most recent translation and clip state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect graphics.Rect)

	// Clear fills the entire canvas with the given color.
	Clear(color graphics.Color)

	// DrawPath fills a path with the provided paint.
	DrawPath(path *graphics.Path, paint Paint)

	// Size returns the canvas dimensions.
	Size() graphics.Size
}
