package drag

import (
	"math"
	"time"

	"golang.org/x/time/rate"
)

// DefaultThrottle is the minimum spacing between forwarded drag deltas.
const DefaultThrottle = 100 * time.Millisecond

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Translator turns raw pointer positions into signed deltas along the
// dominant axis of movement.
type Translator struct {
	// OnDrag receives the dominant-axis delta. Positive values mean the
	// pointer moved left or up since the previous move.
	OnDrag func(delta float64)
	// OnDragging is called with true when a gesture starts and false when
	// it ends.
	OnDragging func(dragging bool)

	state   State
	enabled bool
	lastX   float64
	lastY   float64
	limiter *rate.Limiter
	now     func() time.Time

	// last delta the limiter turned away, delivered by Flush
	pending    float64
	hasPending bool
}

// New returns an enabled translator. A throttle of zero forwards every
// move.
func New(throttle time.Duration) *Translator {
	t := &Translator{enabled: true, now: time.Now}
	if throttle > 0 {
		t.limiter = rate.NewLimiter(rate.Every(throttle), 1)
	}
	return t
}

func (t *Translator) State() State { return t.state }

func (t *Translator) Enabled() bool { return t.enabled }

// SetEnabled turns gesture handling on or off. Disabling mid-gesture drops
// back to idle without notifying OnDragging and discards any held delta.
func (t *Translator) SetEnabled(enabled bool) {
	if t.enabled && !enabled {
		t.state = Idle
		t.hasPending = false
	}
	t.enabled = enabled
}

// Begin starts a gesture at (x, y).
func (t *Translator) Begin(x, y float64) {
	if !t.enabled || t.state == Dragging {
		return
	}
	t.state = Dragging
	t.lastX, t.lastY = x, y
	if t.OnDragging != nil {
		t.OnDragging(true)
	}
}

// Move reports the pointer at (x, y). The delta is measured against the
// previous move, not the gesture start.
func (t *Translator) Move(x, y float64) {
	if t.state != Dragging {
		return
	}
	dx := t.lastX - x
	dy := t.lastY - y
	t.lastX, t.lastY = x, y

	if dx == 0 && dy == 0 {
		return
	}
	t.forward(DominantDelta(dx, dy))
}

// End finishes the gesture on release or termination.
func (t *Translator) End() {
	if t.state != Dragging {
		return
	}
	t.state = Idle
	if t.OnDragging != nil {
		t.OnDragging(false)
	}
}

func (t *Translator) forward(delta float64) {
	if t.OnDrag == nil {
		return
	}
	if t.limiter != nil && !t.limiter.AllowN(t.now(), 1) {
		t.pending, t.hasPending = delta, true
		return
	}
	t.hasPending = false
	t.OnDrag(delta)
}

// Flush forwards the most recent throttled delta once the limiter lets it
// through, so the last move of a burst is never lost. Call it every tick.
func (t *Translator) Flush() {
	if !t.hasPending || t.OnDrag == nil || t.limiter == nil {
		return
	}
	if !t.limiter.AllowN(t.now(), 1) {
		return
	}
	t.hasPending = false
	t.OnDrag(t.pending)
}

// DominantDelta returns dx when horizontal movement is strictly larger,
// otherwise dy.
func DominantDelta(dx, dy float64) float64 {
	if math.Abs(dx) > math.Abs(dy) {
		return dx
	}
	return dy
}
