package provider

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/scriptfs/internal/files/filter"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Config configures a StorageFileProvider.
type Config struct {
	// InitialDirectory is the directory surfaces open first and the target
	// of full refresh events
	InitialDirectory string

	// CacheCapacity bounds the number of cached listings. Zero disables
	// caching; negative values are rejected.
	CacheCapacity int

	// Filter scopes listings. Nil lists every child.
	Filter filter.FileFilter
}

// DefaultConfig returns the configuration of the default script provider:
// capacity 10 and the script filter.
func DefaultConfig(initialDirectory string) Config {
	return Config{
		InitialDirectory: initialDirectory,
		CacheCapacity:    scriptfs.DefaultCacheCapacity,
		Filter:           filter.ScriptFilter(),
	}
}

// Validate checks the configuration.
// It returns a multi-error if multiple validation failures occur.
func (c Config) Validate() error {
	var errs []error

	if c.InitialDirectory == "" {
		errs = append(errs, fmt.Errorf("initial directory is required: %w", scriptfs.ErrInvalidConfig))
	} else if !filepath.IsAbs(c.InitialDirectory) {
		errs = append(errs, fmt.Errorf("initial directory must be absolute, got %q: %w", c.InitialDirectory, scriptfs.ErrInvalidConfig))
	}

	if c.CacheCapacity < 0 {
		errs = append(errs, fmt.Errorf("cache capacity cannot be negative, got %d: %w", c.CacheCapacity, scriptfs.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
