// pkg/session/config.go
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/creativeyann17/go-assetpipe/pkg/assetpipe"
	"github.com/creativeyann17/go-assetpipe/pkg/discovery"
	"github.com/creativeyann17/go-assetpipe/pkg/progress"
)

// CacheDirName is the extraction root's directory under the user cache dir
const CacheDirName = "AVRViewerCache"

var (
	ErrInvalidStep    = errors.New("progress step must be in (0, 1]")
	ErrInvalidCeiling = errors.New("progress ceiling must be in (0, 1]")
	ErrInvalidMaxSize = errors.New("textures max_size must not be negative")
)

// Duration is a time.Duration written as a string ("300ms") in TOML
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the session configuration file
type Config struct {
	ExtractionRoot  string   `toml:"extraction_root"`
	NetworkTimeout  Duration `toml:"network_timeout"`
	ModelExtensions []string `toml:"model_extensions"`

	Progress ProgressConfig `toml:"progress"`
	Textures TextureConfig  `toml:"textures"`
}

// ProgressConfig tunes synthetic progress
type ProgressConfig struct {
	Interval Duration `toml:"interval"`
	Step     float64  `toml:"step"`
	Ceiling  float64  `toml:"ceiling"`
}

// TextureConfig tunes texture resolution
type TextureConfig struct {
	MaxSize      int    `toml:"max_size"`
	CacheEntries int    `toml:"cache_entries"`
	CacheDir     string `toml:"cache_dir"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		ExtractionRoot:  defaultExtractionRoot(),
		NetworkTimeout:  Duration{30 * time.Second},
		ModelExtensions: discovery.ModelExtensions.List(),
		Progress: ProgressConfig{
			Interval: Duration{progress.DefaultInterval},
			Step:     progress.DefaultStep,
			Ceiling:  progress.DefaultCeiling,
		},
		Textures: TextureConfig{
			CacheEntries: 64,
		},
	}
}

func defaultExtractionRoot() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, CacheDirName)
}

// LoadConfig reads a TOML file over the defaults. A missing file yields the
// defaults; an empty path does too.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, assetpipe.NewError(assetpipe.KindFormat, "load config", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, assetpipe.NewError(assetpipe.KindArgument, "load config", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.ExtractionRoot == "" {
		return fmt.Errorf("extraction_root is required")
	}
	if c.Progress.Step <= 0 || c.Progress.Step > 1 {
		return ErrInvalidStep
	}
	if c.Progress.Ceiling <= 0 || c.Progress.Ceiling > 1 {
		return ErrInvalidCeiling
	}
	if c.Textures.MaxSize < 0 {
		return ErrInvalidMaxSize
	}
	return nil
}

// Extensions returns the model extension set
func (c *Config) Extensions() discovery.ExtensionSet {
	if len(c.ModelExtensions) == 0 {
		return discovery.ModelExtensions
	}
	return discovery.NewExtensionSet(c.ModelExtensions...)
}

// Synthetic returns the synthetic progress estimator for this config
func (c *Config) Synthetic() progress.Synthetic {
	return progress.Synthetic{
		Interval: c.Progress.Interval.Duration,
		Step:     c.Progress.Step,
		Ceiling:  c.Progress.Ceiling,
	}
}
