// pkg/session/session.go
package session

import (
	"io"
	"log/slog"
	"os"

	"github.com/creativeyann17/go-assetpipe/internal/gltfparser"
	"github.com/creativeyann17/go-assetpipe/pkg/discovery"
	"github.com/creativeyann17/go-assetpipe/pkg/fetch"
	"github.com/creativeyann17/go-assetpipe/pkg/scene"
	"github.com/creativeyann17/go-assetpipe/pkg/texture"
)

// Session carries the configuration and collaborators shared by every loader
// of one viewer instance.
type Session struct {
	Config   Config
	Logger   *slog.Logger
	Parsers  *scene.Registry
	Fetcher  fetch.Fetcher
	Finder   *discovery.Finder
	Textures *texture.Resolver
}

// Option customises a Session
type Option func(*Session)

// WithLogger replaces the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.Logger = logger }
}

// WithFetcher replaces the network fetcher
func WithFetcher(f fetch.Fetcher) Option {
	return func(s *Session) { s.Fetcher = f }
}

// WithParser registers an additional model parser for exts
func WithParser(p scene.Parser, exts ...string) Option {
	return func(s *Session) { s.Parsers.Register(p, exts...) }
}

// New builds a session. The glTF parser is always registered; options may
// add or override parsers.
func New(cfg Config, opts ...Option) *Session {
	s := &Session{
		Config:  cfg,
		Logger:  NewLogger(false, false),
		Parsers: scene.NewRegistry(),
	}
	s.Parsers.Register(gltfparser.New(), gltfparser.Extensions...)

	for _, opt := range opts {
		opt(s)
	}

	if s.Fetcher == nil {
		s.Fetcher = fetch.NewHTTPFetcher(cfg.NetworkTimeout.Duration)
	}
	s.Finder = discovery.NewFinder(s.Logger)
	s.Textures = texture.NewResolver(texture.Options{
		MaxSize:      cfg.Textures.MaxSize,
		CacheEntries: cfg.Textures.CacheEntries,
		CacheDir:     cfg.Textures.CacheDir,
	}, s.Logger)
	return s
}

// NewLogger returns a text logger on stderr. verbose enables debug output,
// quiet discards everything.
func NewLogger(verbose, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
