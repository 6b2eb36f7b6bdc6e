package provider

import (
	"iter"
	"path/filepath"
	"slices"

	"github.com/vvka-141/scriptfs/internal/bus"
	"github.com/vvka-141/scriptfs/internal/cache"
	"github.com/vvka-141/scriptfs/internal/files/filter"
	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// DirectoryScanner lists the immediate children of a directory.
// *scanner.Scanner satisfies it.
type DirectoryScanner interface {
	ScanDirectory(dir string, f filter.FileFilter) ([]scriptfs.Entry, error)
}

// StorageFileProvider composes a bounded listing cache, a change bus and a
// file filter. Safe for concurrent use: the cache and the observer registry
// are guarded independently and no lock is held while scanning or while
// observers run.
type StorageFileProvider struct {
	initialDir string
	filter     filter.FileFilter
	scanner    DirectoryScanner
	cache      *cache.DirectoryCache
	bus        *bus.ChangeBus
	logger     scriptfs.Logger
}

// New creates a provider. A nil logger discards log output.
// Returns an error wrapping scriptfs.ErrInvalidConfig for invalid configs.
// Panics if scanner is nil.
func New(cfg Config, scanner DirectoryScanner, logger scriptfs.Logger) (*StorageFileProvider, error) {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newProvider(cfg, scanner, logger), nil
}

// newProvider builds a provider from an already validated config.
func newProvider(cfg Config, scanner DirectoryScanner, logger scriptfs.Logger) *StorageFileProvider {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	p := &StorageFileProvider{
		initialDir: filepath.Clean(cfg.InitialDirectory),
		filter:     cfg.Filter,
		scanner:    scanner,
		cache:      cache.New(cfg.CacheCapacity),
		bus:        bus.New(logger),
		logger:     logger,
	}
	p.cache.OnEvict(func(path string) {
		logger.Verbose("listing cache full, evicted %s", path)
	})
	return p
}

// InitialDirectory returns the directory surfaces open first.
func (p *StorageFileProvider) InitialDirectory() string {
	return p.initialDir
}

// ListDirectory returns the entries of dir. Cached listings are served
// without touching storage; otherwise dir is scanned and the result cached
// before it is returned. Scan failures yield an empty sequence.
//
// The sequence is a snapshot: iterating it again yields the same entries
// even if the directory has changed since.
func (p *StorageFileProvider) ListDirectory(dir string) iter.Seq[scriptfs.Entry] {
	return slices.Values(p.listing(dir))
}

// Entries is ListDirectory collected into a slice.
func (p *StorageFileProvider) Entries(dir string) []scriptfs.Entry {
	return slices.Clone(p.listing(dir))
}

// ListInitialDirectory lists the initial directory.
func (p *StorageFileProvider) ListInitialDirectory() iter.Seq[scriptfs.Entry] {
	return p.ListDirectory(p.initialDir)
}

// IsCached reports whether dir currently has a cached listing.
func (p *StorageFileProvider) IsCached(dir string) bool {
	_, ok := p.cache.Get(filepath.Clean(dir))
	return ok
}

// CachedDirectories returns the cached directory paths, oldest first.
func (p *StorageFileProvider) CachedDirectories() []string {
	return p.cache.Keys()
}

func (p *StorageFileProvider) listing(dir string) cache.Listing {
	dir = filepath.Clean(dir)
	if l, ok := p.cache.Get(dir); ok {
		return l
	}

	entries, err := p.scanner.ScanDirectory(dir, p.filter)
	if err != nil {
		p.logger.Verbose("listing %s: %v", dir, err)
		return nil
	}
	p.cache.Put(dir, entries)
	return entries
}

// NotifyFileCreated records that file was created in dir. The file is
// prepended to dir's cached listing and a create event is published.
// Nothing happens when dir is not cached.
func (p *StorageFileProvider) NotifyFileCreated(dir string, file scriptfs.Entry) {
	dir = filepath.Clean(dir)
	updated := p.cache.Update(dir, func(l cache.Listing) (cache.Listing, bool) {
		next := make(cache.Listing, 0, len(l)+1)
		next = append(next, file)
		return append(next, l...), true
	})
	if !updated {
		return
	}
	p.bus.Publish(scriptfs.NewFileEvent(scriptfs.ChangeCreate, dir, file))
}

// NotifyFileChanged records that oldFile in dir became newFile (typically a
// rename). newFile takes oldFile's position. Nothing happens when dir is
// not cached or oldFile is not in its listing.
func (p *StorageFileProvider) NotifyFileChanged(dir string, oldFile, newFile scriptfs.Entry) {
	dir = filepath.Clean(dir)
	updated := p.cache.Update(dir, func(l cache.Listing) (cache.Listing, bool) {
		i := indexOf(l, oldFile)
		if i < 0 {
			return nil, false
		}
		next := slices.Clone(l)
		next[i] = newFile
		return next, true
	})
	if !updated {
		return
	}
	p.bus.Publish(scriptfs.NewChangeEvent(dir, oldFile, newFile))
}

// NotifyFileRemoved records that file was removed from dir. Nothing happens
// when dir is not cached or file is not in its listing.
func (p *StorageFileProvider) NotifyFileRemoved(dir string, file scriptfs.Entry) {
	dir = filepath.Clean(dir)
	updated := p.cache.Update(dir, func(l cache.Listing) (cache.Listing, bool) {
		i := indexOf(l, file)
		if i < 0 {
			return nil, false
		}
		return slices.Delete(slices.Clone(l), i, i+1), true
	})
	if !updated {
		return
	}
	p.bus.Publish(scriptfs.NewFileEvent(scriptfs.ChangeRemove, dir, file))
}

// NotifyDirectoryChanged drops dir's listing and publishes a refresh event.
// Use it when it is unknown which children changed.
func (p *StorageFileProvider) NotifyDirectoryChanged(dir string) {
	dir = filepath.Clean(dir)
	p.cache.Remove(dir)
	p.bus.Publish(scriptfs.NewRefreshEvent(dir))
}

// NotifyStoragePermissionGranted drops every listing, since scans made
// before access was granted came back empty, and asks observers to reload
// the initial directory.
func (p *StorageFileProvider) NotifyStoragePermissionGranted() {
	p.cache.Clear()
	p.bus.Publish(scriptfs.NewRefreshEvent(p.initialDir))
}

// RefreshAll drops every listing and publishes a refresh event for the
// initial directory followed by one per previously cached directory.
func (p *StorageFileProvider) RefreshAll() {
	dirs := p.cache.Drain()
	p.bus.Publish(scriptfs.NewRefreshEvent(p.initialDir))
	for _, dir := range dirs {
		p.bus.Publish(scriptfs.NewRefreshEvent(dir))
	}
}

// Subscribe registers an observer for change events.
func (p *StorageFileProvider) Subscribe(o scriptfs.Observer) {
	p.bus.Subscribe(o)
}

// Unsubscribe removes an observer.
func (p *StorageFileProvider) Unsubscribe(o scriptfs.Observer) {
	p.bus.Unsubscribe(o)
}

func indexOf(l cache.Listing, e scriptfs.Entry) int {
	return slices.IndexFunc(l, e.Same)
}

var _ scriptfs.DirectoryWatcher = (*StorageFileProvider)(nil)
