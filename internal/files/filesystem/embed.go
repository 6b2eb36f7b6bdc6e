package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// embedFile implements File interface for an fs.FS member
type embedFile struct {
	fsys    fs.FS
	absPath string // path within the fs.FS (always forward slashes)
	relPath string
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.absPath)
}

// embedDirectory implements Directory interface for an fs.FS
type embedDirectory struct {
	fsys    fs.FS
	absPath string
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.fsys, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}
		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(filePath, d.absPath), "/")
		if rel == "" {
			rel = "."
		}
		return fn(&embedFile{fsys: d.fsys, absPath: filePath, relPath: rel, info: info}, nil)
	})
}

// EmbedFileSystem is a read-only FileSystemProvider over an fs.FS, used
// for resources compiled into the binary with go:embed.
type EmbedFileSystem struct {
	fsys fs.FS
	root string // root path within fsys (always forward slashes)
}

// NewEmbedFileSystem wraps fsys, treating the root subdirectory as ".".
func NewEmbedFileSystem(fsys fs.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{fsys: fsys, root: path.Clean(root)}
}

// resolve maps a caller path onto a path inside fsys. Absolute paths are
// taken relative to the fs.FS itself, relative ones to root.
func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	switch {
	case p == "" || p == ".":
		return efs.root
	case path.IsAbs(p):
		return path.Clean(strings.TrimPrefix(p, "/"))
	default:
		return path.Join(efs.root, p)
	}
}

// Open implements FileSystemProvider.Open
func (efs *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := efs.resolve(openPath)
	if _, err := fs.ReadDir(efs.fsys, absPath); err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}
	return &embedDirectory{fsys: efs.fsys, absPath: absPath}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := fs.ReadFile(efs.fsys, efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (efs *EmbedFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	entries, err := fs.ReadDir(efs.fsys, efs.resolve(dirPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, err)
	}
	result := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", e.Name(), err)
		}
		result = append(result, info)
	}
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.fsys, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}

var _ FileSystemProvider = (*EmbedFileSystem)(nil)
