// pkg/loader/archive.go
package loader

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/decompress"
	"github.com/creativeyann17/go-assetpipe/pkg/fetch"
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/creativeyann17/go-assetpipe/pkg/session"
	"github.com/pkg/errors"
)

// Progress shares of the archive pipeline stages
const (
	downloadShare = 0.5
	extractShare  = 0.1
)

// ArchiveLoader fetches a model archive (URL or local path), unpacks it
// under the session's extraction root and loads the first model inside.
type ArchiveLoader struct {
	machine
	session *session.Session

	// Password decrypts encrypted ZIP entries
	Password string
}

// NewArchiveLoader creates an idle archive loader
func NewArchiveLoader(s *session.Session) *ArchiveLoader {
	return &ArchiveLoader{session: s}
}

func (l *ArchiveLoader) LoadSync(ctx context.Context, path string) (*Result, error) {
	if err := l.begin(); err != nil {
		return nil, err
	}
	res := l.run(ctx, path)
	return res, res.Err
}

func (l *ArchiveLoader) LoadAsync(ctx context.Context, path string) (<-chan *Result, error) {
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

// ExtractDir returns where an archive is unpacked: the extraction root
// joined with the archive's name without extension.
func (l *ArchiveLoader) ExtractDir(archive string) string {
	return extractDir(l.session, archive)
}

func (l *ArchiveLoader) run(ctx context.Context, archive string) *Result {
	log := l.session.Logger
	log.Debug("loading archive", "path", archive)

	res := l.load(ctx, archive)
	l.end(res.Err)

	logOutcome(log, "archive", res)
	return res
}

func (l *ArchiveLoader) load(ctx context.Context, archive string) *Result {
	return loadArchive(ctx, l.session, archive, l.Password, l.tracker.Set)
}

// loadArchive fetches and unpacks archive, then parses the first model
// inside. set receives the whole pipeline's progress in [0,1].
func loadArchive(ctx context.Context, s *session.Session, archive, password string, set func(float64)) *Result {
	if archive == "" {
		return failed(archive, assetpipe.NewError(assetpipe.KindArgument, "load archive", archive, ErrPathRequired))
	}

	opts := decompress.DefaultOptions()
	opts.OutputPath = extractDir(s, archive)
	opts.Password = password
	opts.Quiet = true

	if fetch.IsRemote(archive) {
		data, err := s.Fetcher.Fetch(ctx, archive, func(f float64) {
			set(f * downloadShare)
		})
		if err != nil {
			return failed(archive, errors.Wrapf(err, "fetch archive %s", archive))
		}
		opts.Data = data
	} else {
		opts.InputPath = archive
	}
	set(downloadShare)

	_, err := decompress.Decompress(opts, func(e assetpipe.ProgressEvent) {
		if e.Type == assetpipe.EventFileComplete && e.Total > 0 {
			set(downloadShare + extractShare*float64(e.Current)/float64(e.Total))
		}
	})
	if err != nil {
		return failed(archive, errors.Wrapf(err, "extract archive %s", archive))
	}
	set(downloadShare + extractShare)

	modelPath, _ := s.Finder.FindFirstModel(opts.OutputPath, s.Config.Extensions())
	if modelPath == "" {
		return failed(archive, assetpipe.NewError(assetpipe.KindIO, "load archive", opts.OutputPath, ErrNoModel))
	}
	s.Logger.Debug("archive model found", "archive", archive, "model", modelPath)

	// Nested archives are not unpacked again
	const parsed = downloadShare + extractShare
	res := parseModel(ctx, s, modelPath, func(f float64) {
		set(parsed + (1-parsed)*f)
	})
	if res.Err != nil {
		res.Err = errors.Wrapf(res.Err, "load archive %s", archive)
	}
	return res
}

// isArchive reports whether path names an archive no parser claims
func isArchive(s *session.Session, path string) bool {
	if _, ok := s.Parsers.Lookup(scene.FormatOf(path)); ok {
		return false
	}
	return archiveExt(path) != ""
}

func extractDir(s *session.Session, archive string) string {
	return filepath.Join(s.Config.ExtractionRoot, archiveStem(archive))
}

func archiveExt(archive string) string {
	if i := strings.IndexAny(archive, "?#"); i >= 0 {
		archive = archive[:i]
	}
	lower := strings.ToLower(archive)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

var archiveExts = []string{".tar.xz", ".zip", ".unity3d"}

// archiveStem is the archive's base name without query, fragment or extension
func archiveStem(archive string) string {
	if i := strings.IndexAny(archive, "?#"); i >= 0 {
		archive = archive[:i]
	}
	base := path.Base(strings.ReplaceAll(archive, "\\", "/"))
	if ext := archiveExt(base); ext != "" {
		return base[:len(base)-len(ext)]
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
