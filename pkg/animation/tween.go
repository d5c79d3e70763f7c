package animation

import "github.com/go-drift/ink/pkg/graphics"

// Lerp interpolates between a and b at progress t in [0, 1].
type Lerp[T any] func(a, b T, t float64) T

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpOffset linearly interpolates between two Offset values, i.e. moves
// along the straight line from a to b.
func LerpOffset(a, b graphics.Offset, t float64) graphics.Offset {
	return graphics.Offset{
		X: LerpFloat64(a.X, b.X, t),
		Y: LerpFloat64(a.Y, b.Y, t),
	}
}

// LerpColor linearly interpolates each ARGB channel.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	ar, ag, ab, aa := a.Components()
	br, bg, bb, ba := b.Components()
	ch := func(x, y uint8) uint8 {
		return uint8(LerpFloat64(float64(x), float64(y), t))
	}
	return graphics.RGBA8(ch(ar, br), ch(ag, bg), ch(ab, bb), ch(aa, ba))
}
