package hash_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/rewind/internal/hash"
)

func TestFileDigestStable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	d1 := hash.File(path)
	d2 := hash.File(path)

	assert.NotEmpty(t, d1)
	assert.Equal(t, d1, d2)
	assert.Equal(t, hash.Bytes([]byte("hello")), d1)
}

func TestFileDigestDetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("A"), 0o644))
	before := hash.File(path)

	require.NoError(t, os.WriteFile(path, []byte("B"), 0o644))
	after := hash.File(path)

	assert.NotEqual(t, before, after)
}

func TestFileDigestSameContentSameDigest(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.txt")
	p2 := filepath.Join(dir, "two.txt")
	require.NoError(t, os.WriteFile(p1, []byte("same"), 0o644))
	require.NoError(t, os.WriteFile(p2, []byte("same"), 0o644))

	assert.Equal(t, hash.File(p1), hash.File(p2))
}

func TestFileMissingReturnsEmpty(t *testing.T) {
	assert.Empty(t, hash.File(filepath.Join(t.TempDir(), "gone.txt")))
}

func TestFileDirectoryReturnsEmpty(t *testing.T) {
	assert.Empty(t, hash.File(t.TempDir()))
}

func TestFileLargeUsesSameDigest(t *testing.T) {
	// Content above the mmap threshold must hash identically to Bytes.
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")

	data := make([]byte, 5<<20)
	for i := range data {
		data[i] = byte(i % 251)
	}
	require.NoError(t, os.WriteFile(path, data, 0o644))

	assert.Equal(t, hash.Bytes(data), hash.File(path))
}
