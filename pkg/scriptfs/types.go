package scriptfs

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// Entry is a single filesystem object known to a directory listing.
// Entries are values: a rename or move produces a new Entry.
type Entry struct {
	// Path is the cleaned absolute path of the object
	Path string

	// Name is the display name (last path element)
	Name string

	// IsDir reports whether the entry is a directory
	IsDir bool

	// Size is the file size in bytes at scan time (0 for directories)
	Size int64

	// ModTime is the modification time at scan time
	ModTime time.Time
}

// NewEntry builds an Entry for path. Name is derived from the path.
func NewEntry(path string, isDir bool) Entry {
	path = filepath.Clean(path)
	return Entry{
		Path:  path,
		Name:  filepath.Base(path),
		IsDir: isDir,
	}
}

// EntryFromInfo builds an Entry for a child of dir described by info.
func EntryFromInfo(dir string, info fs.FileInfo) Entry {
	return Entry{
		Path:    filepath.Join(dir, info.Name()),
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
}

// Same reports whether e and other denote the same filesystem object.
// Listings identify entries by path only; metadata may be stale.
func (e Entry) Same(other Entry) bool {
	return e.Path == other.Path
}

// Dir returns the directory containing the entry.
func (e Entry) Dir() string {
	return filepath.Dir(e.Path)
}

// Ext returns the file extension including the dot, or "" for directories.
func (e Entry) Ext() string {
	if e.IsDir {
		return ""
	}
	return filepath.Ext(e.Name)
}

// SimplifiedName returns the name without its extension. Directories keep
// their full name.
func (e Entry) SimplifiedName() string {
	ext := e.Ext()
	return e.Name[:len(e.Name)-len(ext)]
}

func (e Entry) String() string {
	if e.IsDir {
		return e.Path + "/"
	}
	return e.Path
}

// ChangeKind tags a ChangeEvent.
type ChangeKind int

const (
	ChangeRemove ChangeKind = iota
	ChangeCreate
	ChangeModify
	// ChangeAll means cached knowledge of the directory was discarded and
	// observers must re-read it.
	ChangeAll
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeRemove:
		return "remove"
	case ChangeCreate:
		return "create"
	case ChangeModify:
		return "change"
	case ChangeAll:
		return "refresh"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// ChangeEvent describes a change to one directory's listing.
// Events are immutable after construction and shared by all observers.
type ChangeEvent struct {
	Kind ChangeKind

	// Dir is the directory whose listing changed
	Dir string

	// Old is the affected entry before the change. For create and remove it
	// equals New. Zero for ChangeAll.
	Old Entry

	// New is the affected entry after the change. Zero for ChangeAll.
	New Entry
}

// NewFileEvent creates a create or remove event for a single file.
func NewFileEvent(kind ChangeKind, dir string, file Entry) ChangeEvent {
	return ChangeEvent{Kind: kind, Dir: dir, Old: file, New: file}
}

// NewChangeEvent creates a change event replacing oldFile with newFile.
func NewChangeEvent(dir string, oldFile, newFile Entry) ChangeEvent {
	return ChangeEvent{Kind: ChangeModify, Dir: dir, Old: oldFile, New: newFile}
}

// NewRefreshEvent creates a full refresh event for dir.
func NewRefreshEvent(dir string) ChangeEvent {
	return ChangeEvent{Kind: ChangeAll, Dir: dir}
}

func (e ChangeEvent) String() string {
	switch e.Kind {
	case ChangeAll:
		return fmt.Sprintf("%s %s", e.Kind, e.Dir)
	case ChangeModify:
		return fmt.Sprintf("%s %s: %s -> %s", e.Kind, e.Dir, e.Old.Name, e.New.Name)
	default:
		return fmt.Sprintf("%s %s: %s", e.Kind, e.Dir, e.New.Name)
	}
}
