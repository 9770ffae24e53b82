package tween

import (
	"errors"
	"fmt"
	"time"

	"github.com/iburimskiy/tonal-tangents/internal/geometry"
)

// DefaultDuration is how long a shape change takes.
const DefaultDuration = 100 * time.Millisecond

var ErrVertexCountMismatch = errors.New("can't animate a polygon with changing number of points")

// Interpolate linearly blends each coordinate of from toward to.
func Interpolate(from, to []geometry.Point, f float64) ([]geometry.Point, error) {
	if len(from) != len(to) {
		return nil, fmt.Errorf("%w: %d != %d", ErrVertexCountMismatch, len(from), len(to))
	}
	out := make([]geometry.Point, len(from))
	for i := range from {
		out[i] = geometry.Point{
			X: from[i].X + (to[i].X-from[i].X)*f,
			Y: from[i].Y + (to[i].Y-from[i].Y)*f,
		}
	}
	return out, nil
}

// Overlay animates a polygon between shapes. All vertex tracks share one
// clock, so they start and finish together.
type Overlay struct {
	Duration time.Duration
	Easing   func(float64) float64

	from    []geometry.Point
	to      []geometry.Point
	current []geometry.Point
	elapsed time.Duration
}

// NewOverlay starts at rest on initial.
func NewOverlay(initial []geometry.Point, d time.Duration) *Overlay {
	pts := append([]geometry.Point(nil), initial...)
	return &Overlay{
		Duration: d,
		Easing:   Ease,
		from:     pts,
		to:       pts,
		current:  pts,
		elapsed:  d,
	}
}

// Retarget begins animating toward to from wherever the polygon is now.
// Targets equal to the current destination are ignored.
func (o *Overlay) Retarget(to []geometry.Point) error {
	if len(to) != len(o.to) {
		return fmt.Errorf("%w: %d != %d", ErrVertexCountMismatch, len(o.to), len(to))
	}
	if equal(to, o.to) {
		return nil
	}
	o.from = append([]geometry.Point(nil), o.current...)
	o.to = append([]geometry.Point(nil), to...)
	o.elapsed = 0
	if o.Duration <= 0 {
		o.current = o.to
		o.elapsed = o.Duration
	}
	return nil
}

// Advance moves the animation clock forward by dt.
func (o *Overlay) Advance(dt time.Duration) {
	if !o.Animating() {
		return
	}
	o.elapsed += dt
	if o.elapsed >= o.Duration {
		o.elapsed = o.Duration
		o.current = o.to
		return
	}
	f := float64(o.elapsed) / float64(o.Duration)
	if o.Easing != nil {
		f = o.Easing(f)
	}
	// lengths were checked in Retarget
	o.current, _ = Interpolate(o.from, o.to, f)
}

func (o *Overlay) Animating() bool { return o.elapsed < o.Duration }

// Vertices returns the polygon for the current frame.
func (o *Overlay) Vertices() []geometry.Point { return o.current }

func equal(a, b []geometry.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
