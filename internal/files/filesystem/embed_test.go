package filesystem

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedFS() *EmbedFileSystem {
	return NewEmbedFileSystem(fstest.MapFS{
		"assets/sample/basics/hello.js": {Data: []byte("toast('hello')")},
		"assets/sample/basics/loop.js":  {Data: []byte("while(true){}")},
		"assets/sample/ui/layout.auto":  {Data: []byte("{}")},
	}, "assets/sample")
}

func TestEmbedFileSystem_ReadFile(t *testing.T) {
	efs := newTestEmbedFS()

	content, err := efs.ReadFile("basics/hello.js")
	require.NoError(t, err)
	assert.Equal(t, "toast('hello')", string(content))

	content, err = efs.ReadFile("/assets/sample/ui/layout.auto")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))

	_, err = efs.ReadFile("missing.js")
	assert.Error(t, err)
}

func TestEmbedFileSystem_ReadDir(t *testing.T) {
	efs := newTestEmbedFS()

	infos, err := efs.ReadDir(".")
	require.NoError(t, err)
	assert.Equal(t, []string{"basics", "ui"}, names(infos))
	assert.True(t, infos[0].IsDir())
}

func TestEmbedFileSystem_Walk(t *testing.T) {
	efs := newTestEmbedFS()

	dir, err := efs.Open(".")
	require.NoError(t, err)

	var files []string
	require.NoError(t, dir.Walk(func(f File, err error) error {
		if err != nil {
			return err
		}
		if !f.Info().IsDir() {
			files = append(files, f.RelativePath())
		}
		return nil
	}))
	assert.Equal(t, []string{"basics/hello.js", "basics/loop.js", "ui/layout.auto"}, files)
}

func TestEmbedFileSystem_Stat(t *testing.T) {
	efs := newTestEmbedFS()

	info, err := efs.Stat("basics")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = efs.Open("basics/hello.js")
	assert.Error(t, err)
}
