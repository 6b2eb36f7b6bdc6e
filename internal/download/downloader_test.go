package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
	"github.com/vvka-141/scriptfs/internal/retry"
	"github.com/vvka-141/scriptfs/pkg/scriptfs"
)

func fastRetry(maxAttempts int) Option {
	return WithRetry(retry.NewExecutor(
		retry.NewHTTPErrorClassifier(),
		retry.NewExponentialBackoff(maxAttempts, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
	))
}

func TestDownload_WritesBodyAndReportsProgress(t *testing.T) {
	body := strings.Repeat("toast('hi');\n", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	fs := filesystem.NewMemoryFileSystem("/sdcard")
	d := New(fs, fastRetry(0))

	var last Progress
	n, err := d.Download(context.Background(), srv.URL+"/hello.js", "/sdcard/Scripts/hello.js", func(p Progress) {
		last = p
	})

	require.NoError(t, err)
	assert.Equal(t, int64(len(body)), n)
	assert.Equal(t, int64(len(body)), last.Written)
	assert.Equal(t, 100, last.Percent())

	got, err := fs.ReadFile("/sdcard/Scripts/hello.js")
	require.NoError(t, err)
	assert.Equal(t, body, string(got))
	assert.False(t, d.Active(srv.URL+"/hello.js"))
}

func TestDownload_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	fs := filesystem.NewMemoryFileSystem("/")
	n, err := New(fs, fastRetry(3)).Download(context.Background(), srv.URL, "/a.js", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDownload_NotFoundIsFatal(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	fs := filesystem.NewMemoryFileSystem("/")
	_, err := New(fs, fastRetry(3)).Download(context.Background(), srv.URL, "/a.js", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, scriptfs.ErrDownloadFailed)
	var statusErr *retry.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
	assert.False(t, fs.Exists("/a.js"))
}

func TestDownload_WriteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	fs := filesystem.NewMemoryFileSystem("/")
	fs.FailOn("write", "/a.js", errors.New("read-only storage"))

	_, err := New(fs, fastRetry(0)).Download(context.Background(), srv.URL, "/a.js", nil)
	assert.ErrorIs(t, err, scriptfs.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "read-only storage")
}

func TestDownload_Cancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	fs := filesystem.NewMemoryFileSystem("/")
	d := New(fs, fastRetry(3))
	url := srv.URL + "/big.js"

	var cancelled atomic.Bool
	_, err := d.Download(context.Background(), url, "/big.js", func(Progress) {
		if cancelled.CompareAndSwap(false, true) {
			assert.True(t, d.Active(url))
			assert.True(t, d.Cancel(url))
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, scriptfs.ErrDownloadCancelled)
	assert.NotErrorIs(t, err, scriptfs.ErrDownloadFailed)
	assert.False(t, d.Active(url))
	assert.False(t, d.Cancel(url), "nothing left to cancel")
}

func TestDownload_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	fs := filesystem.NewMemoryFileSystem("/")
	_, err := New(fs, fastRetry(3), WithTimeout(50*time.Millisecond)).Download(context.Background(), srv.URL, "/a.js", nil)
	assert.ErrorIs(t, err, scriptfs.ErrDownloadFailed)
}

func TestNew_PanicsOnNilFilesystem(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
