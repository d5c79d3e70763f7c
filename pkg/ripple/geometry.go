package ripple

import "github.com/go-drift/ink/pkg/graphics"

// Radii returns the initial and final ripple radius for a surface of the
// given size: half the diagonal scaled by 0.6, and half the diagonal plus 10.
func Radii(size graphics.Size) (initial, final float64) {
	half := size.Diagonal() / 2
	return half * initialRadiusFactor, half + finalRadiusPadding
}

// effectiveRadius returns the radius of the drawn shape: the override when
// it is set (> 0), otherwise final.
func effectiveRadius(final, maxRadius float64) float64 {
	if maxRadius > 0 {
		return maxRadius
	}
	return final
}
