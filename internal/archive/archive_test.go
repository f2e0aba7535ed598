package archive_test

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/rewind/internal/archive"
	"github.com/keshon/rewind/internal/fs"
)

func TestPackExtractRoundTrip(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("proj/a.txt", []byte("alpha"), 0o644)
	m.WriteFile("proj/sub/b.txt", []byte("beta"), 0o644)

	require.NoError(t, archive.Pack(m, "out.zip", "proj", []string{"a.txt", "sub/b.txt"}))

	written, err := archive.Extract(m, "out.zip", "restored")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "sub/b.txt"}, written)

	data, err := m.ReadFile("restored/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	data, err = m.ReadFile("restored/sub/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))
}

func TestPackMissingSource(t *testing.T) {
	m := fs.NewMemoryFS()
	err := archive.Pack(m, "out.zip", "proj", []string{"gone.txt"})
	assert.Error(t, err)
	assert.False(t, m.Exists("out.zip"), "failed pack must not leave an archive")
}

func TestExtractOverwrites(t *testing.T) {
	m := fs.NewMemoryFS()
	m.WriteFile("proj/a.txt", []byte("new"), 0o644)
	require.NoError(t, archive.Pack(m, "out.zip", "proj", []string{"a.txt"}))

	m.WriteFile("dest/a.txt", []byte("old"), 0o644)
	m.WriteFile("dest/keep.txt", []byte("keep"), 0o644)

	_, err := archive.Extract(m, "out.zip", "dest")
	require.NoError(t, err)

	data, _ := m.ReadFile("dest/a.txt")
	assert.Equal(t, "new", string(data), "extraction overwrites changed files")
	assert.True(t, m.Exists("dest/keep.txt"), "extraction never deletes")
}

func TestExtractRejectsEscapingEntries(t *testing.T) {
	// Hand-craft an archive with a path traversal entry.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../evil.txt")
	require.NoError(t, err)
	w.Write([]byte("nope"))
	require.NoError(t, zw.Close())

	m := fs.NewMemoryFS()
	m.WriteFile("bad.zip", buf.Bytes(), 0o644)

	_, err = archive.Extract(m, "bad.zip", "dest")
	assert.Error(t, err)
	assert.False(t, m.Exists("evil.txt"))
	assert.False(t, m.Exists(filepath.Join("dest", "..", "evil.txt")))
}

func TestExtractMissingArchive(t *testing.T) {
	m := fs.NewMemoryFS()
	_, err := archive.Extract(m, "absent.zip", "dest")
	assert.Error(t, err)
}
