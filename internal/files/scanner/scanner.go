package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/files/filter"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Scanner performs one-level directory scans.
// Scanner is safe for concurrent use as long as the provider is.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a scanner over the OS filesystem.
func NewScanner() *Scanner {
	return &Scanner{fsProvider: filesystem.NewOSFileSystem()}
}

// NewScannerWithFS creates a scanner over a custom filesystem provider.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{fsProvider: fsProvider}
}

// ScanDirectory returns the children of dir accepted by f, in the order the
// filesystem reports them. A nil filter accepts everything.
func (s *Scanner) ScanDirectory(dir string, f filter.FileFilter) ([]scriptfs.Entry, error) {
	dir = filepath.Clean(dir)

	infos, err := s.fsProvider.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	entries := make([]scriptfs.Entry, 0, len(infos))
	for _, info := range infos {
		if f != nil && !f.Accept(info) {
			continue
		}
		entries = append(entries, scriptfs.EntryFromInfo(dir, info))
	}
	return entries, nil
}

// Stat resolves a single path to an Entry.
func (s *Scanner) Stat(path string) (scriptfs.Entry, error) {
	path = filepath.Clean(path)
	info, err := s.fsProvider.Stat(path)
	if err != nil {
		return scriptfs.Entry{}, err
	}
	return scriptfs.EntryFromInfo(filepath.Dir(path), info), nil
}
