package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables overlaid by ApplyEnv.
const (
	EnvHome          = "SCRIPTFS_HOME"
	EnvExternalRoot  = "SCRIPTFS_EXTERNAL_ROOT"
	EnvCacheCapacity = "SCRIPTFS_CACHE_CAPACITY"
)

type StorageConfig struct {
	Home                  string   `yaml:"home"`
	ExternalRoot          string   `yaml:"external_root"`
	CacheCapacity         *int     `yaml:"cache_capacity,omitempty"`
	ExternalCacheCapacity *int     `yaml:"external_cache_capacity,omitempty"`
	Extensions            []string `yaml:"extensions,omitempty"`
}

type DownloadConfig struct {
	MaxAttempts  *int   `yaml:"max_attempts,omitempty"`
	InitialDelay string `yaml:"initial_delay,omitempty"`
	Timeout      string `yaml:"timeout,omitempty"`
}

type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Download DownloadConfig `yaml:"download"`
}

// Defaults returns the configuration used when nothing else is given.
// The script home is ~/Scripts and the external root is the home directory.
func Defaults() *Config {
	root, err := os.UserHomeDir()
	if err != nil {
		root = os.TempDir()
	}
	return &Config{
		Storage: StorageConfig{
			Home:                  filepath.Join(root, "Scripts"),
			ExternalRoot:          root,
			CacheCapacity:         intPtr(scriptfs.DefaultCacheCapacity),
			ExternalCacheCapacity: intPtr(scriptfs.ExternalStorageCacheCapacity),
			Extensions:            append([]string(nil), scriptfs.ScriptExtensions...),
		},
		Download: DownloadConfig{
			MaxAttempts:  intPtr(3),
			InitialDelay: "200ms",
			Timeout:      "30s",
		},
	}
}

// Load reads scriptfs.yaml from dir.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, scriptfs.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", configPath, scriptfs.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Merge overlays the non-zero fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	s, o := &c.Storage, other.Storage
	if o.Home != "" {
		s.Home = o.Home
	}
	if o.ExternalRoot != "" {
		s.ExternalRoot = o.ExternalRoot
	}
	if o.CacheCapacity != nil {
		s.CacheCapacity = o.CacheCapacity
	}
	if o.ExternalCacheCapacity != nil {
		s.ExternalCacheCapacity = o.ExternalCacheCapacity
	}
	if len(o.Extensions) > 0 {
		s.Extensions = o.Extensions
	}

	d, od := &c.Download, other.Download
	if od.MaxAttempts != nil {
		d.MaxAttempts = od.MaxAttempts
	}
	if od.InitialDelay != "" {
		d.InitialDelay = od.InitialDelay
	}
	if od.Timeout != "" {
		d.Timeout = od.Timeout
	}
}

// ApplyEnv overlays the SCRIPTFS_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvHome); v != "" {
		c.Storage.Home = v
	}
	if v := os.Getenv(EnvExternalRoot); v != "" {
		c.Storage.ExternalRoot = v
	}
	if v := os.Getenv(EnvCacheCapacity); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCacheCapacity, v, scriptfs.ErrInvalidConfig)
		}
		c.Storage.CacheCapacity = &n
	}
	return nil
}

// CacheCapacity returns the default provider's capacity.
func (c *Config) CacheCapacity() int {
	return derefOr(c.Storage.CacheCapacity, scriptfs.DefaultCacheCapacity)
}

// ExternalCacheCapacity returns the external storage provider's capacity.
func (c *Config) ExternalCacheCapacity() int {
	return derefOr(c.Storage.ExternalCacheCapacity, scriptfs.ExternalStorageCacheCapacity)
}

// MaxAttempts returns the download retry budget.
func (c *Config) MaxAttempts() int {
	return derefOr(c.Download.MaxAttempts, 3)
}

// InitialDelay returns the first download retry delay.
func (c *Config) InitialDelay() (time.Duration, error) {
	return parseDuration("download.initial_delay", c.Download.InitialDelay, 200*time.Millisecond)
}

// DownloadTimeout returns the per-download timeout. Zero disables it.
func (c *Config) DownloadTimeout() (time.Duration, error) {
	return parseDuration("download.timeout", c.Download.Timeout, 30*time.Second)
}

// Validate checks the configuration.
// It returns a multi-error if multiple validation failures occur.
func (c *Config) Validate() error {
	var errs []error

	if c.Storage.Home == "" {
		errs = append(errs, fmt.Errorf("storage.home is required: %w", scriptfs.ErrInvalidConfig))
	}
	if c.Storage.ExternalRoot == "" {
		errs = append(errs, fmt.Errorf("storage.external_root is required: %w", scriptfs.ErrInvalidConfig))
	}
	if c.CacheCapacity() < 0 {
		errs = append(errs, fmt.Errorf("storage.cache_capacity cannot be negative: %w", scriptfs.ErrInvalidConfig))
	}
	if c.ExternalCacheCapacity() < 0 {
		errs = append(errs, fmt.Errorf("storage.external_cache_capacity cannot be negative: %w", scriptfs.ErrInvalidConfig))
	}
	if _, err := c.InitialDelay(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.DownloadTimeout(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", field, value, scriptfs.ErrInvalidConfig)
	}
	return d, nil
}

func intPtr(n int) *int { return &n }

func derefOr(p *int, fallback int) int {
	if p == nil {
		return fallback
	}
	return *p
}
