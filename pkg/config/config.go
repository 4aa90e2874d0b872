// Package config provides configuration types and defaults for blobtrace.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g.
// BLOBTRACE_RENDER_PROGRAM.
const EnvPrefix = "BLOBTRACE"

// Config holds all configuration options for blobtrace.
type Config struct {
	Store     string       `mapstructure:"store"`      // repository or object directory
	Workers   int          `mapstructure:"workers"`    // commit scan parallelism
	CacheSize int          `mapstructure:"cache_size"` // decoded objects kept in memory, 0 disables
	Log       LogConfig    `mapstructure:"log"`
	Render    RenderConfig `mapstructure:"render"`
}

// LogConfig selects the level and encoding of diagnostic output.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console or json
}

// RenderConfig controls how the ancestry graph is written and drawn.
type RenderConfig struct {
	Program string `mapstructure:"program"` // Graphviz layout program
	Format  string `mapstructure:"format"`  // image format passed as -T<format>
	Output  string `mapstructure:"output"`  // DOT file path
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Store:     ".",
		Workers:   runtime.NumCPU(),
		CacheSize: 4096,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Render: RenderConfig{
			Program: "dot",
			Format:  "png",
			Output:  "my_graph.dot",
		},
	}
}

// New returns a viper instance with defaults registered and environment
// overrides enabled.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("store", d.Store)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("cache_size", d.CacheSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("render.program", d.Render.Program)
	v.SetDefault("render.format", d.Render.Format)
	v.SetDefault("render.output", d.Render.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into v, then decodes and validates
// the merged configuration.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: cache_size must be >= 0, got %d", c.CacheSize)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: log.format must be console or json, got %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Render.Format) == "" {
		return fmt.Errorf("config: render.format is required")
	}
	if strings.TrimSpace(c.Render.Output) == "" {
		return fmt.Errorf("config: render.output is required")
	}
	return nil
}

// ErrStoreNotExist is returned when the configured store path is missing.
var ErrStoreNotExist = errors.New("store path does not exist")

// ObjectDir resolves a repository path to its object directory. It
// prefers <path>/.git/objects, then <path>/objects, and otherwise treats
// path itself as the object directory.
func ObjectDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrStoreNotExist, path)
		}
		return "", fmt.Errorf("store path %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("store path %s: not a directory", path)
	}
	for _, candidate := range []string{
		filepath.Join(path, ".git", "objects"),
		filepath.Join(path, "objects"),
	} {
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
	}
	return path, nil
}
