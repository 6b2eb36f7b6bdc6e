package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory nodes
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryNode is one file or directory. seq records creation order, which
// ReadDir reports as the filesystem order.
type memoryNode struct {
	absPath string
	content []byte
	info    memoryFileInfo
	seq     uint64
}

// memoryFile implements File for a node snapshot taken during Walk
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
}

func (f *memoryFile) Path() string                 { return f.absPath }
func (f *memoryFile) RelativePath() string         { return f.relPath }
func (f *memoryFile) Info() FileInfo               { return f.info }
func (f *memoryFile) ReadContent() ([]byte, error) { return f.content, nil }

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	files := d.fs.snapshotUnder(d.absPath)
	sort.Slice(files, func(i, j int) bool {
		return files[i].absPath < files[j].absPath
	})
	for _, f := range files {
		if err := fn(f, nil); err != nil {
			return err
		}
	}
	return nil
}

// MemoryFileSystem implements WritableFileSystem in memory.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu     sync.RWMutex
	nodes  map[string]*memoryNode
	root   string
	seq    uint64
	faults map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem whose root
// directory already exists. Paths use forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		nodes:  make(map[string]*memoryNode),
		root:   path.Clean(filepath.ToSlash(root)),
		faults: make(map[string]error),
	}
	mfs.mkdirLocked(mfs.root)
	return mfs
}

// Root returns the root directory of the filesystem.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file, creating missing parent directories.
// Relative paths are resolved against the root.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.putFileLocked(mfs.abs(filePath), []byte(content))
}

// AddDir adds a directory, creating missing parents.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.mkdirLocked(mfs.abs(dirPath))
}

// FailOn makes the named operation ("readdir", "write", "create", "copy",
// "mkdir", "rename", "remove") return err for filePath.
func (mfs *MemoryFileSystem) FailOn(op, filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.faults[op+":"+mfs.abs(filePath)] = err
}

func (mfs *MemoryFileSystem) fault(op, absPath string) error {
	return mfs.faults[op+":"+absPath]
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) nextSeq() uint64 {
	mfs.seq++
	return mfs.seq
}

func (mfs *MemoryFileSystem) mkdirLocked(dir string) {
	if n, ok := mfs.nodes[dir]; ok && n.info.isDir {
		return
	}
	if parent := path.Dir(dir); parent != dir {
		mfs.mkdirLocked(parent)
	}
	mfs.nodes[dir] = &memoryNode{
		absPath: dir,
		info: memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
		seq: mfs.nextSeq(),
	}
}

func (mfs *MemoryFileSystem) putFileLocked(absPath string, content []byte) {
	mfs.mkdirLocked(path.Dir(absPath))
	seq := mfs.nextSeq()
	if existing, ok := mfs.nodes[absPath]; ok {
		seq = existing.seq
	}
	mfs.nodes[absPath] = &memoryNode{
		absPath: absPath,
		content: content,
		info: memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: time.Now(),
		},
		seq: seq,
	}
}

// under reports whether p is base or lies below it.
func under(p, base string) bool {
	if base == "/" {
		return strings.HasPrefix(p, "/")
	}
	return p == base || strings.HasPrefix(p, base+"/")
}

func (mfs *MemoryFileSystem) snapshotUnder(base string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var files []*memoryFile
	for p, n := range mfs.nodes {
		if !under(p, base) {
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, base), "/")
		if rel == "" {
			rel = "."
		}
		info := n.info
		files = append(files, &memoryFile{absPath: p, relPath: rel, content: n.content, info: &info})
	}
	return files
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.abs(openPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	n, ok := mfs.nodes[absPath]
	if !ok {
		return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
	}
	if !n.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.abs(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	n, ok := mfs.nodes[absPath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if n.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return bytes.Clone(n.content), nil
}

// ReadDir implements FileSystemProvider.ReadDir. Children are reported in
// creation order.
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.abs(dirPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	if err := mfs.fault("readdir", absPath); err != nil {
		return nil, err
	}
	n, ok := mfs.nodes[absPath]
	if !ok {
		return nil, fmt.Errorf("failed to read directory %s: %w", dirPath, fs.ErrNotExist)
	}
	if !n.info.isDir {
		return nil, fmt.Errorf("failed to read directory %s: not a directory", dirPath)
	}

	var children []*memoryNode
	for p, child := range mfs.nodes {
		if p != absPath && path.Dir(p) == absPath {
			children = append(children, child)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].seq < children[j].seq })

	result := make([]FileInfo, 0, len(children))
	for _, c := range children {
		info := c.info
		result = append(result, &info)
	}
	return result, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.abs(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	n, ok := mfs.nodes[absPath]
	if !ok {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	info := n.info
	return &info, nil
}

func (mfs *MemoryFileSystem) Exists(p string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	_, ok := mfs.nodes[mfs.abs(p)]
	return ok
}

func (mfs *MemoryFileSystem) CreateIfNotExists(p string) (bool, error) {
	absPath := mfs.abs(p)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("create", absPath); err != nil {
		return false, err
	}
	if _, ok := mfs.nodes[absPath]; ok {
		return false, nil
	}
	mfs.putFileLocked(absPath, nil)
	return true, nil
}

func (mfs *MemoryFileSystem) WriteFile(p string, data []byte) error {
	absPath := mfs.abs(p)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("write", absPath); err != nil {
		return err
	}
	if n, ok := mfs.nodes[absPath]; ok && n.info.isDir {
		return fmt.Errorf("path is a directory: %s", p)
	}
	mfs.putFileLocked(absPath, bytes.Clone(data))
	return nil
}

func (mfs *MemoryFileSystem) WriteStream(p string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := mfs.WriteFile(p, data); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func (mfs *MemoryFileSystem) CopyFile(from, to string) error {
	src, dst := mfs.abs(from), mfs.abs(to)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("copy", dst); err != nil {
		return err
	}
	n, ok := mfs.nodes[src]
	if !ok {
		return fmt.Errorf("file not found: %s: %w", from, fs.ErrNotExist)
	}
	if n.info.isDir {
		return fmt.Errorf("cannot copy directory: %s", from)
	}
	mfs.putFileLocked(dst, bytes.Clone(n.content))
	return nil
}

func (mfs *MemoryFileSystem) MkdirAll(p string) error {
	absPath := mfs.abs(p)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("mkdir", absPath); err != nil {
		return err
	}
	if n, ok := mfs.nodes[absPath]; ok && !n.info.isDir {
		return fmt.Errorf("file exists: %s: %w", p, fs.ErrExist)
	}
	mfs.mkdirLocked(absPath)
	return nil
}

// Rename moves a file or a whole subtree. The moved entries keep their
// position in their parent's listing order.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	src, dst := mfs.abs(oldPath), mfs.abs(newPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("rename", src); err != nil {
		return err
	}
	if _, ok := mfs.nodes[src]; !ok {
		return fmt.Errorf("rename %s: %w", oldPath, fs.ErrNotExist)
	}
	if _, ok := mfs.nodes[dst]; ok {
		return fmt.Errorf("rename %s: %w", newPath, fs.ErrExist)
	}
	if under(dst, src) {
		return fmt.Errorf("rename %s: cannot move a directory into itself", oldPath)
	}
	mfs.mkdirLocked(path.Dir(dst))

	var moving []*memoryNode
	for p, n := range mfs.nodes {
		if under(p, src) {
			moving = append(moving, n)
		}
	}
	for _, n := range moving {
		delete(mfs.nodes, n.absPath)
	}
	for _, n := range moving {
		moved := *n
		moved.absPath = dst + strings.TrimPrefix(n.absPath, src)
		if n.absPath == src {
			moved.info.name = path.Base(dst)
		}
		mfs.nodes[moved.absPath] = &moved
	}
	return nil
}

func (mfs *MemoryFileSystem) RemoveAll(p string) error {
	absPath := mfs.abs(p)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	if err := mfs.fault("remove", absPath); err != nil {
		return err
	}
	if _, ok := mfs.nodes[absPath]; !ok {
		return fmt.Errorf("remove %s: %w", p, fs.ErrNotExist)
	}
	for np := range mfs.nodes {
		if under(np, absPath) {
			delete(mfs.nodes, np)
		}
	}
	return nil
}

var _ WritableFileSystem = (*MemoryFileSystem)(nil)
