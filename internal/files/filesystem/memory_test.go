package filesystem

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(infos []FileInfo) []string {
	out := make([]string, 0, len(infos))
	for _, i := range infos {
		out = append(out, i.Name())
	}
	return out
}

func TestMemoryFileSystem_ReadDir_CreationOrder(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")
	mfs.AddFile("b.js", "b")
	mfs.AddDir("lib")
	mfs.AddFile("a.js", "a")
	mfs.AddFile("lib/util.js", "u")

	infos, err := mfs.ReadDir("/scripts")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.js", "lib", "a.js"}, names(infos))

	infos, err = mfs.ReadDir("lib")
	require.NoError(t, err)
	assert.Equal(t, []string{"util.js"}, names(infos))
}

func TestMemoryFileSystem_ReadDir_Errors(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")
	mfs.AddFile("a.js", "a")

	_, err := mfs.ReadDir("/scripts/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = mfs.ReadDir("/scripts/a.js")
	assert.Error(t, err)

	denied := errors.New("permission denied")
	mfs.FailOn("readdir", "/scripts", denied)
	_, err = mfs.ReadDir("/scripts")
	assert.ErrorIs(t, err, denied)
}

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/test/project")
	mfs.AddFile("root.js", "1")
	mfs.AddFile("lib/util.js", "2")

	dir, err := mfs.Open("/test/project")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.js", "root.js"}, files)
}

func TestMemoryFileSystem_CreateIfNotExists(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")

	created, err := mfs.CreateIfNotExists("/scripts/new.js")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = mfs.CreateIfNotExists("/scripts/new.js")
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, mfs.Exists("/scripts/new.js"))
}

func TestMemoryFileSystem_WriteAndCopy(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")
	require.NoError(t, mfs.WriteFile("/scripts/a.js", []byte("toast('hi')")))
	require.NoError(t, mfs.CopyFile("/scripts/a.js", "/scripts/b.js"))

	content, err := mfs.ReadFile("/scripts/b.js")
	require.NoError(t, err)
	assert.Equal(t, "toast('hi')", string(content))

	n, err := mfs.WriteStream("/scripts/c.js", strings.NewReader("log(1)"))
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	err = mfs.CopyFile("/scripts/missing.js", "/scripts/d.js")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFileSystem_RenameSubtree(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")
	mfs.AddFile("first.js", "")
	mfs.AddFile("lib/util.js", "u")
	mfs.AddFile("last.js", "")

	require.NoError(t, mfs.Rename("/scripts/lib", "/scripts/common"))

	assert.False(t, mfs.Exists("/scripts/lib/util.js"))
	content, err := mfs.ReadFile("/scripts/common/util.js")
	require.NoError(t, err)
	assert.Equal(t, "u", string(content))

	infos, err := mfs.ReadDir("/scripts")
	require.NoError(t, err)
	assert.Equal(t, []string{"first.js", "common", "last.js"}, names(infos))

	assert.ErrorIs(t, mfs.Rename("/scripts/first.js", "/scripts/last.js"), fs.ErrExist)
	assert.Error(t, mfs.Rename("/scripts/common", "/scripts/common/inner"))
}

func TestMemoryFileSystem_RemoveAll(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")
	mfs.AddFile("lib/a.js", "")
	mfs.AddFile("lib/deep/b.js", "")
	mfs.AddFile("library.js", "")

	require.NoError(t, mfs.RemoveAll("/scripts/lib"))
	assert.False(t, mfs.Exists("/scripts/lib"))
	assert.False(t, mfs.Exists("/scripts/lib/deep/b.js"))
	assert.True(t, mfs.Exists("/scripts/library.js"))

	assert.ErrorIs(t, mfs.RemoveAll("/scripts/lib"), fs.ErrNotExist)
}

func TestMemoryFileSystem_ConcurrentWrites(t *testing.T) {
	mfs := NewMemoryFileSystem("/scripts")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, _ = mfs.CreateIfNotExists("/scripts/" + strings.Repeat("x", id+1) + ".js")
			_, _ = mfs.ReadDir("/scripts")
		}(i)
	}
	wg.Wait()

	infos, err := mfs.ReadDir("/scripts")
	require.NoError(t, err)
	assert.Len(t, infos, 50)
}
