// Package filesystem provides the filesystem capability consumed by the
// listing cache and by the file operations that mutate the script tree.
//
// Key interfaces:
//   - FileSystemProvider: read access (ReadDir, Stat, ReadFile, Open/Walk)
//   - WritableFileSystem: mutations used by file operations
//   - Directory / File: a traversable tree and its members
//
// Implementations:
//   - OSFileSystem: production implementation using the OS filesystem
//   - MemoryFileSystem: thread-safe in-memory implementation for tests
//   - EmbedFileSystem: read-only view over an fs.FS (bundled samples)
package filesystem
