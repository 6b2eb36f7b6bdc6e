package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked directory
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling fn for each file and directory.
	// If fn returns an error, walking stops.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the read side of the filesystem capability.
type FileSystemProvider interface {
	// Open opens a directory at the specified path for walking
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the immediate children of path in the order the
	// filesystem reports them.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// WritableFileSystem adds the mutations performed by file operations.
// None of these methods touch any listing cache; callers report outcomes
// to the provider themselves.
type WritableFileSystem interface {
	FileSystemProvider

	// Exists reports whether anything exists at path.
	Exists(path string) bool

	// CreateIfNotExists creates an empty file. It returns false without
	// error when path already exists.
	CreateIfNotExists(path string) (bool, error)

	// WriteFile replaces the content of the file at path.
	WriteFile(path string, data []byte) error

	// WriteStream copies r into a new or truncated file at path.
	WriteStream(path string, r io.Reader) (int64, error)

	// CopyFile copies a regular file.
	CopyFile(from, to string) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Rename moves oldPath to newPath.
	Rename(oldPath, newPath string) error

	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error
}
