package operations

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/scriptfs/internal/download"
	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/internal/samples"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Notifier receives the outcome of file actions.
// *provider.StorageFileProvider satisfies it.
type Notifier interface {
	NotifyFileCreated(dir string, file scriptfs.Entry)
	NotifyFileChanged(dir string, oldFile, newFile scriptfs.Entry)
	NotifyFileRemoved(dir string, file scriptfs.Entry)
	NotifyDirectoryChanged(dir string)
}

// Option configures ScriptOperations.
type Option func(*ScriptOperations)

// WithDownloader replaces the downloader.
func WithDownloader(d *download.Downloader) Option {
	return func(o *ScriptOperations) { o.downloader = d }
}

// WithSamples replaces the sample library.
func WithSamples(l *samples.Library) Option {
	return func(o *ScriptOperations) { o.samples = l }
}

// WithTempDir sets where TemporarilyDownload stores its files.
func WithTempDir(dir string) Option {
	return func(o *ScriptOperations) { o.tempDir = dir }
}

// WithLogger sets the logger.
func WithLogger(l scriptfs.Logger) Option {
	return func(o *ScriptOperations) { o.logger = l }
}

// ScriptOperations performs file actions relative to a current directory.
type ScriptOperations struct {
	fs         filesystem.WritableFileSystem
	notifier   Notifier
	currentDir string
	downloader *download.Downloader
	samples    *samples.Library
	tempDir    string
	logger     scriptfs.Logger
}

// New creates operations bound to currentDir.
// Panics if fsys or notifier is nil.
func New(fsys filesystem.WritableFileSystem, notifier Notifier, currentDir string, opts ...Option) *ScriptOperations {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	o := &ScriptOperations{
		fs:         fsys,
		notifier:   notifier,
		currentDir: filepath.Clean(currentDir),
		tempDir:    filepath.Join(os.TempDir(), "scriptfs"),
		logger:     logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.downloader == nil {
		o.downloader = download.New(fsys, download.WithLogger(o.logger))
	}
	if o.samples == nil {
		o.samples = samples.NewLibrary()
	}
	return o
}

// CurrentDirectory returns the directory new files are created in.
func (o *ScriptOperations) CurrentDirectory() string {
	return o.currentDir
}

// In returns a copy bound to dir.
func (o *ScriptOperations) In(dir string) *ScriptOperations {
	clone := *o
	clone.currentDir = filepath.Clean(dir)
	return &clone
}

// ValidateName applies the naming rules of the name prompt: name must not
// be empty, and <name><ext> must not already exist in the current
// directory unless name equals excluded (the name being replaced).
func (o *ScriptOperations) ValidateName(name, ext, excluded string) error {
	if strings.TrimSpace(name) == "" {
		return scriptfs.ErrNameEmpty
	}
	if name == excluded {
		return nil
	}
	target := filepath.Join(o.currentDir, name+ext)
	if o.fs.Exists(target) {
		return fmt.Errorf("%s: %w", target, scriptfs.ErrFileExists)
	}
	return nil
}

// CreateScriptFile creates the file at path and writes content to it when
// content is not empty.
func (o *ScriptOperations) CreateScriptFile(path, content string) (scriptfs.Entry, error) {
	path = filepath.Clean(path)

	created, err := o.fs.CreateIfNotExists(path)
	if err != nil {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", path, scriptfs.ErrCreateFailed, err)
	}
	if !created {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w", path, scriptfs.ErrFileExists)
	}
	if content != "" {
		if err := o.fs.WriteFile(path, []byte(content)); err != nil {
			o.discard(filepath.Dir(path), path)
			return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", path, scriptfs.ErrWriteFailed, err)
		}
	}

	entry := o.entry(path, false)
	o.notifier.NotifyFileCreated(entry.Dir(), entry)
	o.logger.Info("created %s", path)
	return entry, nil
}

// NewScriptFile creates <current>/<name>.js.
func (o *ScriptOperations) NewScriptFile(name, content string) (scriptfs.Entry, error) {
	if err := o.ValidateName(name, scriptfs.DefaultScriptExtension, ""); err != nil {
		return scriptfs.Entry{}, err
	}
	return o.CreateScriptFile(filepath.Join(o.currentDir, name+scriptfs.DefaultScriptExtension), content)
}

// NewDirectory creates <current>/<name>.
func (o *ScriptOperations) NewDirectory(name string) (scriptfs.Entry, error) {
	if err := o.ValidateName(name, "", ""); err != nil {
		return scriptfs.Entry{}, err
	}

	path := filepath.Join(o.currentDir, name)
	if err := o.fs.MkdirAll(path); err != nil {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", path, scriptfs.ErrCreateFailed, err)
	}

	entry := o.entry(path, true)
	o.notifier.NotifyFileCreated(o.currentDir, entry)
	o.logger.Info("created directory %s", path)
	return entry, nil
}

// ImportFile copies from into the current directory as <name><ext of from>.
// An empty name keeps the source's name.
func (o *ScriptOperations) ImportFile(ctx context.Context, from, name string) (scriptfs.Entry, error) {
	src := scriptfs.NewEntry(from, false)
	if name == "" {
		name = src.SimplifiedName()
	}
	if err := o.ValidateName(name, src.Ext(), ""); err != nil {
		return scriptfs.Entry{}, err
	}
	if err := ctx.Err(); err != nil {
		return scriptfs.Entry{}, err
	}

	to := filepath.Join(o.currentDir, name+src.Ext())
	if err := o.fs.CopyFile(src.Path, to); err != nil {
		o.discard(o.currentDir, to)
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", from, scriptfs.ErrImportFailed, err)
	}

	entry := o.entry(to, false)
	o.notifier.NotifyFileCreated(o.currentDir, entry)
	o.logger.Info("imported %s as %s", from, to)
	return entry, nil
}

// ImportStream writes r into the current directory as <name><ext>.
func (o *ScriptOperations) ImportStream(ctx context.Context, name string, r io.Reader, ext string) (scriptfs.Entry, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if err := o.ValidateName(name, ext, ""); err != nil {
		return scriptfs.Entry{}, err
	}
	if err := ctx.Err(); err != nil {
		return scriptfs.Entry{}, err
	}

	to := filepath.Join(o.currentDir, name+ext)
	if _, err := o.fs.WriteStream(to, r); err != nil {
		o.discard(o.currentDir, to)
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", to, scriptfs.ErrImportFailed, err)
	}

	entry := o.entry(to, false)
	o.notifier.NotifyFileCreated(o.currentDir, entry)
	o.logger.Info("imported %s", to)
	return entry, nil
}

// ImportSample copies a bundled sample into the current directory. An
// empty name keeps the sample's name.
func (o *ScriptOperations) ImportSample(ctx context.Context, sample samples.Sample, name string) (scriptfs.Entry, error) {
	if name == "" {
		name = sample.Name
	}
	rc, err := o.samples.Open(sample)
	if err != nil {
		return scriptfs.Entry{}, fmt.Errorf("sample %s: %w: %w", sample.Path, scriptfs.ErrImportFailed, err)
	}
	defer rc.Close()

	return o.ImportStream(ctx, name, rc, sample.Ext())
}

// Rename gives file the name newName, keeping a file's extension. The new
// entry replaces the old one in its directory's listing.
func (o *ScriptOperations) Rename(file scriptfs.Entry, newName string) (scriptfs.Entry, error) {
	if newName == file.SimplifiedName() {
		return file, nil
	}
	dir := file.Dir()
	if err := o.In(dir).ValidateName(newName, file.Ext(), file.SimplifiedName()); err != nil {
		return scriptfs.Entry{}, err
	}

	to := filepath.Join(dir, newName+file.Ext())
	if err := o.fs.Rename(file.Path, to); err != nil {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", file.Path, scriptfs.ErrRenameFailed, err)
	}

	renamed := o.entry(to, file.IsDir)
	o.notifier.NotifyFileChanged(dir, file, renamed)
	o.logger.Info("renamed %s to %s", file.Path, to)
	return renamed, nil
}

// Delete removes file, recursively for directories.
func (o *ScriptOperations) Delete(file scriptfs.Entry) error {
	if err := o.fs.RemoveAll(file.Path); err != nil {
		return fmt.Errorf("%s: %w: %w", file.Path, scriptfs.ErrDeleteFailed, err)
	}
	o.notifier.NotifyFileRemoved(file.Dir(), file)
	o.logger.Info("deleted %s", file.Path)
	return nil
}

// Download saves rawURL into saveDir under the name derived from the URL.
// An existing file is replaced only when overwrite is set.
func (o *ScriptOperations) Download(ctx context.Context, rawURL, saveDir string, overwrite bool, progress download.ProgressFunc) (scriptfs.Entry, error) {
	saveDir = filepath.Clean(saveDir)
	path := filepath.Join(saveDir, download.ParseFileName(rawURL))

	existed := o.fs.Exists(path)
	if existed && !overwrite {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w", path, scriptfs.ErrFileExists)
	}
	old := scriptfs.NewEntry(path, false)
	if existed {
		if err := o.fs.RemoveAll(path); err != nil {
			return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", path, scriptfs.ErrDeleteFailed, err)
		}
	}

	if _, err := o.downloader.Download(ctx, rawURL, path, progress); err != nil {
		if o.discard(saveDir, path) && existed {
			o.notifier.NotifyFileRemoved(saveDir, old)
		}
		return scriptfs.Entry{}, err
	}

	entry := o.entry(path, false)
	if existed {
		o.notifier.NotifyFileChanged(saveDir, old, entry)
	} else {
		o.notifier.NotifyFileCreated(saveDir, entry)
	}
	o.logger.Info("downloaded %s to %s", rawURL, path)
	return entry, nil
}

// TemporarilyDownload saves rawURL under a fresh temporary script name.
// Temporary files are not part of any listing.
func (o *ScriptOperations) TemporarilyDownload(ctx context.Context, rawURL string, progress download.ProgressFunc) (scriptfs.Entry, error) {
	if err := o.fs.MkdirAll(o.tempDir); err != nil {
		return scriptfs.Entry{}, fmt.Errorf("%s: %w: %w", o.tempDir, scriptfs.ErrCreateFailed, err)
	}
	path := filepath.Join(o.tempDir, uuid.NewString()+scriptfs.DefaultScriptExtension)
	if _, err := o.downloader.Download(ctx, rawURL, path, progress); err != nil {
		if o.fs.Exists(path) {
			_ = o.fs.RemoveAll(path)
		}
		return scriptfs.Entry{}, err
	}
	return o.entry(path, false), nil
}

// discard removes whatever a failed write left at path. When that fails
// too, dir's listing is invalidated since it no longer matches storage.
// It reports whether path is absent afterwards.
func (o *ScriptOperations) discard(dir, path string) bool {
	if !o.fs.Exists(path) {
		return true
	}
	if err := o.fs.RemoveAll(path); err != nil {
		o.logger.Error("failed to remove incomplete %s: %v", path, err)
		o.notifier.NotifyDirectoryChanged(dir)
		return false
	}
	return true
}

// CancelDownload stops running downloads of rawURL.
func (o *ScriptOperations) CancelDownload(rawURL string) bool {
	return o.downloader.Cancel(rawURL)
}

// Samples returns the sample library.
func (o *ScriptOperations) Samples() *samples.Library {
	return o.samples
}

// entry stats path for metadata, falling back to a bare entry.
func (o *ScriptOperations) entry(path string, isDir bool) scriptfs.Entry {
	info, err := o.fs.Stat(path)
	if err != nil {
		return scriptfs.NewEntry(path, isDir)
	}
	return scriptfs.EntryFromInfo(filepath.Dir(path), info)
}
