package tween

// CubicBezier returns a CSS-style timing function through (0,0), (x1,y1),
// (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	slopeX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	solve := func(x float64) float64 {
		t := x
		for i := 0; i < 8; i++ {
			err := sampleX(t) - x
			if err > -1e-7 && err < 1e-7 {
				return t
			}
			d := slopeX(t)
			if d > -1e-6 && d < 1e-6 {
				break
			}
			t -= err / d
		}
		// bisection fallback
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 32 && lo < hi; i++ {
			v := sampleX(t)
			if v > x-1e-7 && v < x+1e-7 {
				break
			}
			if x > v {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return t
	}

	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return sampleY(solve(x))
	}
}

// Ease is a gentle acceleration, cubic-bezier(0.42, 0, 1, 1).
var Ease = CubicBezier(0.42, 0, 1, 1)

// Linear is the identity timing function.
func Linear(x float64) float64 { return x }
