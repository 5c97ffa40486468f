package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapFS() fstest.MapFS {
	return fstest.MapFS{
		"docs/a.txt":     {Data: []byte("alpha")},
		"docs/b.txt":     {Data: []byte("bravo")},
		"docs/img/x.png": {Data: []byte{0x89, 0x50}},
		"root.txt":       {Data: []byte("root")},
	}
}

func TestFSProvider_ReadDir(t *testing.T) {
	p := NewFSProvider(newMapFS())

	files, err := p.ReadDir("/docs")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "docs/a.txt", files[0].Path())
	assert.Equal(t, "docs/b.txt", files[1].Path())
	assert.True(t, files[2].Info().IsDir())
}

func TestFSProvider_RootPaths(t *testing.T) {
	p := NewFSProvider(newMapFS())

	for _, root := range []string{"", ".", "/"} {
		files, err := p.ReadDir(root)
		require.NoError(t, err, "root %q", root)
		assert.Len(t, files, 2, "root %q", root)
	}
}

func TestFSProvider_FileOpen(t *testing.T) {
	p := NewFSProvider(newMapFS())

	f, err := p.File("docs/b.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(5), f.Info().Size())

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "bravo", string(data))
}

func TestFSProvider_NotExist(t *testing.T) {
	p := NewFSProvider(newMapFS())

	_, err := p.Stat("docs/zzz.txt")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = p.File("docs")
	assert.Error(t, err)
}
