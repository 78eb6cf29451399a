// pkg/progress/estimator.go
package progress

import (
	"context"
	"sync"
	"time"
)

// Synthetic estimation defaults
const (
	DefaultInterval = 300 * time.Millisecond
	DefaultStep     = 0.01
	DefaultCeiling  = 0.9
)

// Estimator feeds a Tracker while a load runs. Start is called when the load
// begins and the returned stop function once it reaches a terminal state.
type Estimator interface {
	Start(ctx context.Context, t *Tracker) (report func(float64), stop func())
}

// Mirror copies the parser's own progress signal into the tracker.
type Mirror struct{}

func (Mirror) Start(_ context.Context, t *Tracker) (func(float64), func()) {
	return t.Set, func() {}
}

// Synthetic approximates progress when no real signal exists: every Interval
// it adds Step, staying below Ceiling. Reported values are ignored.
type Synthetic struct {
	Interval time.Duration
	Step     float64
	Ceiling  float64
}

// NewSynthetic returns a Synthetic estimator with default settings
func NewSynthetic() Synthetic {
	return Synthetic{Interval: DefaultInterval, Step: DefaultStep, Ceiling: DefaultCeiling}
}

func (s Synthetic) Start(ctx context.Context, t *Tracker) (func(float64), func()) {
	interval, step, ceiling := s.Interval, s.Step, s.Ceiling
	if interval <= 0 {
		interval = DefaultInterval
	}
	if step <= 0 {
		step = DefaultStep
	}
	if ceiling <= 0 || ceiling > 1 {
		ceiling = DefaultCeiling
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Add(step, ceiling)
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	return func(float64) {}, stop
}
