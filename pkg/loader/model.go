// pkg/loader/model.go
package loader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/fetch"
	"github.com/creativeyann17/go-assetpipe/pkg/progress"
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/creativeyann17/go-assetpipe/pkg/session"
	"github.com/pkg/errors"
)

// Loader is implemented by the single-model variants
type Loader interface {
	Observer

	// LoadSync runs a load to its terminal state and returns its result
	LoadSync(ctx context.Context, path string) (*Result, error)

	// LoadAsync starts a load and returns a channel receiving exactly one result
	LoadAsync(ctx context.Context, path string) (<-chan *Result, error)
}

// ModelLoader loads one model file, local or http(s), and binds its
// side-car textures.
type ModelLoader struct {
	machine
	session   *session.Session
	estimator progress.Estimator
}

// ModelOption customises a ModelLoader
type ModelOption func(*ModelLoader)

// WithEstimator replaces the progress strategy (Mirror by default)
func WithEstimator(e progress.Estimator) ModelOption {
	return func(l *ModelLoader) { l.estimator = e }
}

// NewModelLoader creates an idle loader bound to a session
func NewModelLoader(s *session.Session, opts ...ModelOption) *ModelLoader {
	l := &ModelLoader{session: s, estimator: progress.Mirror{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *ModelLoader) LoadSync(ctx context.Context, path string) (*Result, error) {
	if err := l.begin(); err != nil {
		return nil, err
	}
	res := l.run(ctx, path)
	return res, res.Err
}

func (l *ModelLoader) LoadAsync(ctx context.Context, path string) (<-chan *Result, error) {
	if err := l.begin(); err != nil {
		return nil, err
	}
	ch := make(chan *Result, 1)
	go func() {
		defer close(ch)
		ch <- l.run(ctx, path)
	}()
	return ch, nil
}

func (l *ModelLoader) run(ctx context.Context, path string) *Result {
	log := l.session.Logger
	log.Debug("loading model", "path", path)

	report, stop := l.estimator.Start(ctx, &l.tracker)
	res := loadModel(ctx, l.session, path, report)
	stop()
	l.end(res.Err)

	logOutcome(log, "model", res)
	return res
}

// loadModel loads path, unpacking it first when it is a model archive.
// report receives progress in [0,1].
func loadModel(ctx context.Context, s *session.Session, path string, report func(float64)) *Result {
	if path == "" {
		return failed(path, assetpipe.NewError(assetpipe.KindArgument, "load", path, ErrPathRequired))
	}
	if isArchive(s, path) {
		return loadArchive(ctx, s, path, "", report)
	}
	return parseModel(ctx, s, path, report)
}

// parseModel acquires the bytes for path, parses them and resolves textures
// next to local models. report receives parser progress.
func parseModel(ctx context.Context, s *session.Session, path string, report func(float64)) *Result {

	src := scene.Source{Path: path, Format: scene.FormatOf(path)}
	root := ""
	if fetch.IsRemote(path) {
		data, err := s.Fetcher.Fetch(ctx, path, nil)
		if err != nil {
			return failed(path, errors.Wrapf(err, "fetch model %s", path))
		}
		src.Reader = bytes.NewReader(data)
	} else {
		if _, err := os.Stat(path); err != nil {
			return failed(path, assetpipe.NewError(assetpipe.KindIO, "load", path, err))
		}
		root = filepath.Dir(path)
	}

	model, err := s.Parsers.Parse(ctx, src, report)
	if err != nil {
		return failed(path, errors.Wrapf(err, "parse model %s", path))
	}
	if model == nil || model.Scene == nil {
		return failed(path, assetpipe.NewError(assetpipe.KindFormat, "parse", path, ErrNoScene))
	}

	res := &Result{
		Path:      path,
		Scene:     model.Scene,
		Clips:     model.Clips,
		Materials: model.Materials,
	}
	// Remote models have no local folder to search
	if root != "" {
		res.Textures = s.Textures.ResolveAll(model.Materials, root)
	}
	return res
}
