// pkg/loader/batch.go
package loader

import (
	"context"
	"sync"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/progress"
	"github.com/creativeyann17/go-assetpipe/pkg/session"
)

// BatchLoader loads every model file directly inside a folder, one at a
// time in discovery order. Failed items leave a nil at their index.
type BatchLoader struct {
	machine
	session *session.Session
	item    *ModelLoader

	mu        sync.Mutex
	files     []string
	completed int
	overall   progress.Tracker
}

// NewBatchLoader creates an idle batch loader. Items use synthetic progress
// tuned by the session config.
func NewBatchLoader(s *session.Session) *BatchLoader {
	return &BatchLoader{
		session: s,
		item:    NewModelLoader(s, WithEstimator(s.Config.Synthetic())),
	}
}

// Progress returns the active item's progress, which restarts at 0 for
// each item, and 1 once the batch has finished.
func (b *BatchLoader) Progress() float64 {
	if b.State() == Loading {
		return b.item.Progress()
	}
	return b.tracker.Value()
}

// Overall returns batch-wide progress: (completed items + active item) / items.
func (b *BatchLoader) Overall() float64 {
	if b.State() != Loading {
		return b.tracker.Value()
	}
	b.mu.Lock()
	total, done := len(b.files), b.completed
	b.mu.Unlock()
	if total > 0 {
		cur := 0.0
		if b.item.State() == Loading {
			cur = b.item.Progress()
		}
		b.overall.Set((float64(done) + cur) / float64(total))
	}
	return b.overall.Value()
}

// LoadSync loads the folder and returns one result per discovered file
func (b *BatchLoader) LoadSync(ctx context.Context, dir string) ([]*Result, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}
	return b.run(ctx, dir)
}

// LoadAsync loads the folder in the background. The channel receives the
// aggregated results once, after the last item terminates.
func (b *BatchLoader) LoadAsync(ctx context.Context, dir string) (<-chan []*Result, error) {
	if err := b.begin(); err != nil {
		return nil, err
	}
	ch := make(chan []*Result, 1)
	go func() {
		defer close(ch)
		results, _ := b.run(ctx, dir)
		ch <- results
	}()
	return ch, nil
}

func (b *BatchLoader) run(ctx context.Context, dir string) ([]*Result, error) {
	log := b.session.Logger
	if dir == "" {
		err := assetpipe.NewError(assetpipe.KindArgument, "load folder", dir, ErrPathRequired)
		b.end(err)
		log.Error("load failed", "loader", "batch", "error", err)
		return nil, err
	}

	files := b.session.Finder.ListModelFiles(dir, b.session.Config.Extensions())
	b.mu.Lock()
	b.files, b.completed = files, 0
	b.mu.Unlock()
	b.overall.Reset()
	log.Debug("loading folder", "dir", dir, "items", len(files))

	results := make([]*Result, len(files))
	failures := 0
	for i, file := range files {
		res, err := b.item.LoadSync(ctx, file)
		if err == nil {
			results[i] = res
		} else {
			failures++
		}
		b.mu.Lock()
		b.completed++
		b.mu.Unlock()
	}

	b.end(nil)
	log.Info("folder loaded", "dir", dir, "items", len(files), "failed", failures)
	return results, nil
}
