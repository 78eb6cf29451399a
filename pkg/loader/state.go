// pkg/loader/state.go
package loader

import (
	"sync/atomic"

	"github.com/creativeyann17/go-assetpipe/pkg/progress"
)

// State is the lifecycle of a loader
type State int32

const (
	Idle State = iota
	Loading
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a request
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}

// Observer exposes the state and progress of a loader
type Observer interface {
	State() State
	Progress() float64
}

// machine is the state machine shared by every loader variant.
// Idle -> Loading -> {Succeeded, Failed}; a terminal state accepts a new request.
type machine struct {
	state   atomic.Int32
	tracker progress.Tracker
}

func (m *machine) State() State {
	return State(m.state.Load())
}

func (m *machine) Progress() float64 {
	return m.tracker.Value()
}

// begin moves to Loading, rejecting the request while one is in flight
func (m *machine) begin() error {
	for {
		cur := m.state.Load()
		if State(cur) == Loading {
			return ErrBusy
		}
		if m.state.CompareAndSwap(cur, int32(Loading)) {
			m.tracker.Reset()
			return nil
		}
	}
}

// end snaps progress to 1 and moves to the terminal state matching err
func (m *machine) end(err error) {
	m.tracker.Finish()
	if err != nil {
		m.state.Store(int32(Failed))
		return
	}
	m.state.Store(int32(Succeeded))
}
