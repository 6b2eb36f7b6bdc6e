package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Open_ValidDirectory(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	d, err := fs.Open(dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.Equal(t, absDir, d.Path())
}

func TestOSFileSystem_Open_FileNotDirectory(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.js")
	require.NoError(t, os.WriteFile(filePath, []byte("content"), 0644))

	_, err := NewOSFileSystem().Open(filePath)
	assert.Error(t, err)
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0755))

	infos, err := NewOSFileSystem().ReadDir(dir)
	require.NoError(t, err)

	got := names(infos)
	sort.Strings(got)
	assert.Equal(t, []string{"a.js", "lib"}, got)
}

func TestOSFileSystem_ReadDir_Nonexistent(t *testing.T) {
	_, err := NewOSFileSystem().ReadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestOSFileSystem_CreateIfNotExists(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	target := filepath.Join(dir, "sub", "new.js")

	created, err := fs.CreateIfNotExists(target)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = fs.CreateIfNotExists(target)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestOSFileSystem_WriteCopyRenameRemove(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	c := filepath.Join(dir, "c.js")

	require.NoError(t, fs.WriteFile(a, []byte("log(1)")))
	require.NoError(t, fs.CopyFile(a, b))
	data, err := fs.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "log(1)", string(data))

	require.NoError(t, fs.Rename(b, c))
	assert.False(t, fs.Exists(b))
	assert.True(t, fs.Exists(c))

	n, err := fs.WriteStream(a, strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "lib", "deep")))
	require.NoError(t, fs.WriteFile(filepath.Join(dir, "lib", "deep", "d.js"), nil))
	require.NoError(t, fs.RemoveAll(filepath.Join(dir, "lib")))
	assert.False(t, fs.Exists(filepath.Join(dir, "lib")))

	assert.Error(t, fs.RemoveAll(filepath.Join(dir, "lib")))
}

func TestOSFileSystem_WriteStream_FailedCopyLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	target := filepath.Join(dir, "partial.js")
	broken := io.MultiReader(strings.NewReader("toast("), iotest.ErrReader(io.ErrUnexpectedEOF))

	_, err := fs.WriteStream(target, broken)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.False(t, fs.Exists(target))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file is cleaned up")
}

func TestOSFileSystem_WriteStream_FailedCopyKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	target := filepath.Join(dir, "kept.js")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	_, err := fs.WriteStream(target, iotest.ErrReader(io.ErrUnexpectedEOF))
	require.Error(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}
