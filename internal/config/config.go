package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/LeJamon/goBinkit/internal/codec/endian"
	"github.com/LeJamon/goBinkit/internal/codec/lp"
	"github.com/LeJamon/goBinkit/internal/codec/pattern"
)

// Config represents the complete binkit configuration
type Config struct {
	// Byte order used when a command is not given --endian
	Endian string `toml:"endian" mapstructure:"endian"`

	LP      LPConfig      `toml:"lp" mapstructure:"lp"`
	CString CStringConfig `toml:"cstr" mapstructure:"cstr"`
	Scan    ScanConfig    `toml:"scan" mapstructure:"scan"`
	Output  OutputConfig  `toml:"output" mapstructure:"output"`
	Log     LogConfig     `toml:"log" mapstructure:"log"`
	Cache   CacheConfig   `toml:"cache" mapstructure:"cache"`

	// Number of files scanned in parallel, 0 means GOMAXPROCS
	Workers int `toml:"workers" mapstructure:"workers"`

	// Internal fields for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// LPConfig represents the [lp] section: length-prefixed frames
type LPConfig struct {
	Width       int    `toml:"width" mapstructure:"width"`
	Compression string `toml:"compression" mapstructure:"compression"`
	Level       int    `toml:"level" mapstructure:"level"`
}

// CStringConfig represents the [cstr] section
type CStringConfig struct {
	MaxLen int `toml:"max_len" mapstructure:"max_len"`
}

// ScanConfig represents the [scan] section: signature search defaults
type ScanConfig struct {
	Width int    `toml:"width" mapstructure:"width"`
	Skip  uint64 `toml:"skip" mapstructure:"skip"`
	Limit uint64 `toml:"limit" mapstructure:"limit"`
}

// OutputConfig represents the [output] section
type OutputConfig struct {
	Format string `toml:"format" mapstructure:"format"`
}

// CacheConfig represents the [cache] section: persistent scan results
type CacheConfig struct {
	// Directory of the result store, empty disables caching
	Dir  string `toml:"dir" mapstructure:"dir"`
	Size int    `toml:"size" mapstructure:"size"`
}

// LogConfig represents the [log] section
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
}

// ConfigPaths holds the paths to configuration files
type ConfigPaths struct {
	Main string // Path to main config file (binkit.toml); empty means defaults only
}

// configNames are the file names DefaultConfigPaths looks for, in order
var configNames = []string{"binkit.toml", "binkit.yaml", "binkit.yml", "binkit.json"}

// DefaultConfigPaths returns the first binkit config file found in the
// working directory, or no path at all
func DefaultConfigPaths() ConfigPaths {
	return ConfigPathsFromDir(".")
}

// ConfigPathsFromDir returns configuration paths for a specific directory
func ConfigPathsFromDir(configDir string) ConfigPaths {
	for _, name := range configNames {
		p := filepath.Join(configDir, name)
		if _, err := os.Stat(p); err == nil {
			return ConfigPaths{Main: p}
		}
	}
	return ConfigPaths{}
}

// GetConfigPath returns the path to the main configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Order returns the configured byte order
func (c *Config) Order() endian.Order {
	o, _ := endian.ParseOrder(c.Endian)
	return o
}

// Frame returns the configured length-prefix frame
func (c *Config) Frame() lp.Frame {
	return lp.Frame{Width: lp.Width(c.LP.Width), Order: c.Order()}
}

// OutputFormat returns the configured output format
func (c *Config) OutputFormat() pattern.Format {
	f, _ := pattern.ParseFormat(c.Output.Format)
	return f
}

// WorkerCount returns the number of parallel workers to use
func (c *Config) WorkerCount() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

// LogLevel returns the configured slog level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return level, nil
}
