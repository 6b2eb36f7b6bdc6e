package samples

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/scriptfs/internal/files/filesystem"
)

func TestBundledLibrary(t *testing.T) {
	lib := NewLibrary()

	all, err := lib.List()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	hello, err := lib.Find("hello")
	require.NoError(t, err)
	assert.Equal(t, Sample{Name: "hello", Category: "basics", Path: "basics/hello.js"}, hello)
	assert.Equal(t, ".js", hello.Ext())

	rc, err := lib.Open(hello)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Hello, world")
}

func TestList_SortedByCategoryThenName(t *testing.T) {
	fsys := fstest.MapFS{
		"root/b/z.js":     {Data: []byte("z")},
		"root/b/a.auto":   {Data: []byte("a")},
		"root/a/m.js":     {Data: []byte("m")},
		"root/top.js":     {Data: []byte("t")},
		"other/ignore.js": {Data: []byte("x")},
	}
	lib := NewLibraryWithFS(filesystem.NewEmbedFileSystem(fsys, "root"))

	all, err := lib.List()
	require.NoError(t, err)
	assert.Equal(t, []Sample{
		{Name: "top", Category: "", Path: "top.js"},
		{Name: "m", Category: "a", Path: "a/m.js"},
		{Name: "a", Category: "b", Path: "b/a.auto"},
		{Name: "z", Category: "b", Path: "b/z.js"},
	}, all)

	s, err := lib.Find("b/z")
	require.NoError(t, err)
	assert.Equal(t, "b/z.js", s.Path)

	_, err = lib.Find("missing")
	assert.Error(t, err)
}

func TestNewLibraryWithFS_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewLibraryWithFS(nil) })
}
