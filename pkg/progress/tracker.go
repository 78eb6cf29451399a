// pkg/progress/tracker.go
package progress

import (
	"math"
	"sync/atomic"
)

// Tracker holds a load fraction in [0,1]. Within one load it never moves
// backwards; Reset starts a new load at 0.
type Tracker struct {
	bits atomic.Uint64
}

// Value returns the current fraction
func (t *Tracker) Value() float64 {
	return math.Float64frombits(t.bits.Load())
}

// Set raises the fraction to v. Lower values are ignored and v is clamped to [0,1].
func (t *Tracker) Set(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = max(0, min(v, 1))
	for {
		old := t.bits.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if t.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// Add raises the fraction by delta but never beyond ceiling. It reports
// whether the value changed.
func (t *Tracker) Add(delta, ceiling float64) bool {
	for {
		old := t.bits.Load()
		cur := math.Float64frombits(old)
		next := min(cur+delta, ceiling, 1)
		if next <= cur {
			return false
		}
		if t.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return true
		}
	}
}

// Finish snaps the fraction to 1
func (t *Tracker) Finish() {
	t.bits.Store(math.Float64bits(1))
}

// Reset puts the fraction back to 0 for a new load
func (t *Tracker) Reset() {
	t.bits.Store(0)
}
