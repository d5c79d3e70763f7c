package animation

import "math"

// Curve maps linear progress t in [0, 1] to eased progress.
type Curve func(t float64) float64

// Linear returns linear progress (no easing).
func Linear(t float64) float64 {
	return t
}

// Standard is the material standard curve, cubic-bezier(0.4, 0, 0.2, 1).
// Ripple growth and travel use it.
var Standard = CubicBezier(0.4, 0.0, 0.2, 1.0)

// EaseOut starts quickly and decelerates.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleCurve(y1, y2, solveCurveX(x1, x2, t))
	}
}

// solveCurveX finds the bezier parameter whose x equals t.
func solveCurveX(x1, x2, t float64) float64 {
	const tolerance = 1e-7

	u := t
	// Newton-Raphson converges quickly for most values.
	for range 8 {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < tolerance {
			return clampUnit(u)
		}
		dx := sampleCurveDerivative(x1, x2, u)
		if math.Abs(dx) < tolerance {
			break
		}
		u -= x / dx
	}

	// Bisection fallback keeps the solution inside [0,1].
	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for range 12 {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < tolerance {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}
	return u
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
