// Package samples bundles example scripts into the binary.
package samples

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
)

//go:embed assets
var assets embed.FS

const assetsRoot = "assets"

// Sample is one bundled script.
type Sample struct {
	// Name is the file name without extension.
	Name string
	// Category is the assets subdirectory the sample lives in.
	Category string
	// Path is relative to the assets root, e.g. "basics/hello.js".
	Path string
}

// Ext returns the sample's extension including the dot.
func (s Sample) Ext() string {
	return path.Ext(s.Path)
}

// Library serves samples from a read-only filesystem.
type Library struct {
	fs filesystem.FileSystemProvider
}

// NewLibrary returns the library of samples compiled into the binary.
func NewLibrary() *Library {
	return &Library{fs: filesystem.NewEmbedFileSystem(assets, assetsRoot)}
}

// NewLibraryWithFS serves samples from fsys, whose root holds one
// directory per category.
// Panics if fsys is nil.
func NewLibraryWithFS(fsys filesystem.FileSystemProvider) *Library {
	if fsys == nil {
		panic("fsProvider cannot be nil")
	}
	return &Library{fs: fsys}
}

// List returns every sample ordered by category then name.
func (l *Library) List() ([]Sample, error) {
	dir, err := l.fs.Open(".")
	if err != nil {
		return nil, fmt.Errorf("failed to open samples: %w", err)
	}

	var samples []Sample
	err = dir.Walk(func(f filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if f.Info().IsDir() {
			return nil
		}
		rel := f.RelativePath()
		category := path.Dir(rel)
		if category == "." {
			category = ""
		}
		samples = append(samples, Sample{
			Name:     strings.TrimSuffix(path.Base(rel), path.Ext(rel)),
			Category: category,
			Path:     rel,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list samples: %w", err)
	}

	slices.SortFunc(samples, func(a, b Sample) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return samples, nil
}

// Find returns the sample called name, optionally qualified by category
// ("basics/hello").
func (l *Library) Find(name string) (Sample, error) {
	all, err := l.List()
	if err != nil {
		return Sample{}, err
	}
	for _, s := range all {
		if s.Name == name || path.Join(s.Category, s.Name) == name || s.Path == name {
			return s, nil
		}
	}
	return Sample{}, fmt.Errorf("sample %q not found", name)
}

// Open returns the sample's content.
func (l *Library) Open(s Sample) (io.ReadCloser, error) {
	content, err := l.fs.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
