package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/logging"
	"github.com/vvka-141/scriptfs/internal/retry"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

// Progress describes a running download. Total is -1 when the server did
// not announce a length.
type Progress struct {
	URL     string
	Written int64
	Total   int64
}

// Percent returns the completed share in [0, 100], or -1 when unknown.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return -1
	}
	pct := int(p.Written * 100 / p.Total)
	return min(pct, 100)
}

// ProgressFunc receives progress updates from the downloading goroutine.
type ProgressFunc func(Progress)

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) { d.client = c }
}

// WithRetry replaces the retry executor.
func WithRetry(e *retry.Executor) Option {
	return func(d *Downloader) { d.executor = e }
}

// WithTimeout bounds each download, retries included. Zero disables it.
func WithTimeout(t time.Duration) Option {
	return func(d *Downloader) { d.timeout = t }
}

// WithLogger sets the logger.
func WithLogger(l scriptfs.Logger) Option {
	return func(d *Downloader) { d.logger = l }
}

// Downloader fetches URLs into a filesystem.
type Downloader struct {
	fs       filesystem.WritableFileSystem
	client   *http.Client
	executor *retry.Executor
	timeout  time.Duration
	logger   scriptfs.Logger

	mu     sync.Mutex
	active map[string]map[uuid.UUID]context.CancelCauseFunc
}

// New creates a downloader writing into fsys.
// Panics if fsys is nil.
func New(fsys filesystem.WritableFileSystem, opts ...Option) *Downloader {
	if fsys == nil {
		panic("filesystem cannot be nil")
	}
	d := &Downloader{
		fs:       fsys,
		client:   http.DefaultClient,
		executor: retry.NewExecutor(retry.NewHTTPErrorClassifier(), retry.NewExponentialBackoff(3)),
		logger:   logging.NewNullLogger(),
		active:   make(map[string]map[uuid.UUID]context.CancelCauseFunc),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches rawURL into path, replacing whatever is there, and
// returns the number of bytes written. Failures wrap
// scriptfs.ErrDownloadFailed; a download stopped by Cancel returns an error
// wrapping scriptfs.ErrDownloadCancelled.
func (d *Downloader) Download(ctx context.Context, rawURL, path string, progress ProgressFunc) (int64, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	ctx, id := d.track(ctx, rawURL)
	defer d.untrack(rawURL, id)

	d.logger.Verbose("download %s started (%s)", rawURL, id)

	var written int64
	executor := d.executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		d.logger.Info("download %s: %v, retrying in %v (attempt %d)", rawURL, err, delay, attempt+1)
	})
	err := executor.Execute(ctx, func(ctx context.Context) error {
		n, err := d.fetch(ctx, rawURL, path, progress)
		written = n
		return err
	})
	if err != nil {
		if errors.Is(context.Cause(ctx), scriptfs.ErrDownloadCancelled) {
			return 0, fmt.Errorf("%s: %w", rawURL, scriptfs.ErrDownloadCancelled)
		}
		return 0, fmt.Errorf("%s: %w: %w", rawURL, scriptfs.ErrDownloadFailed, err)
	}

	d.logger.Verbose("download %s finished: %d bytes", rawURL, written)
	return written, nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL, path string, progress ProgressFunc) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &retry.StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body := &progressReader{
		r:        resp.Body,
		progress: Progress{URL: rawURL, Total: resp.ContentLength},
		report:   progress,
	}
	return d.fs.WriteStream(path, body)
}

// Cancel stops every running download of rawURL. It reports whether any
// was running.
func (d *Downloader) Cancel(rawURL string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	tasks := d.active[rawURL]
	for _, cancel := range tasks {
		cancel(scriptfs.ErrDownloadCancelled)
	}
	return len(tasks) > 0
}

// Active reports whether a download of rawURL is running.
func (d *Downloader) Active(rawURL string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active[rawURL]) > 0
}

func (d *Downloader) track(ctx context.Context, rawURL string) (context.Context, uuid.UUID) {
	ctx, cancel := context.WithCancelCause(ctx)
	id := uuid.New()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active[rawURL] == nil {
		d.active[rawURL] = make(map[uuid.UUID]context.CancelCauseFunc)
	}
	d.active[rawURL][id] = cancel
	return ctx, id
}

func (d *Downloader) untrack(rawURL string, id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cancel, ok := d.active[rawURL][id]; ok {
		cancel(nil)
		delete(d.active[rawURL], id)
	}
	if len(d.active[rawURL]) == 0 {
		delete(d.active, rawURL)
	}
}

type progressReader struct {
	r        io.Reader
	progress Progress
	report   ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.progress.Written += int64(n)
		if p.report != nil {
			p.report(p.progress)
		}
	}
	// a body shorter than announced must fail before the file is committed
	if err == io.EOF && p.progress.Total >= 0 && p.progress.Written < p.progress.Total {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}
