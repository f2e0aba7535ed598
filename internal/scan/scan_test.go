package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/scan"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFilesNestedDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", "x")
	write(t, root, "sub/b.txt", "y")
	write(t, root, "sub/deep/c.txt", "z")

	paths, err := scan.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt", "sub/deep/c.txt"}, paths)
}

func TestFilesEmptyTree(t *testing.T) {
	paths, err := scan.Files(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFilesSkipsHistoryDir(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", "x")
	write(t, root, config.HistoryDir+"/metadata.json", "{}")
	write(t, root, config.HistoryDir+"/states/state_001.zip", "zip")

	paths, err := scan.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)
}

func TestFilesAppliesIgnoreList(t *testing.T) {
	root := t.TempDir()
	write(t, root, "main.go", "package main")
	write(t, root, ".git/HEAD", "ref")
	write(t, root, ".git/objects/aa/bb", "obj")
	write(t, root, "node_modules/pkg/index.js", "js")
	write(t, root, "debug.log", "log")
	write(t, root, ".env", "SECRET=1")

	paths, err := scan.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, paths)
}

func TestFilesFreshWalkSeesNewFiles(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.txt", "x")

	first, err := scan.Files(root)
	require.NoError(t, err)
	require.Len(t, first, 1)

	write(t, root, "b.txt", "y")
	second, err := scan.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, second)
}

func TestFilesMissingRoot(t *testing.T) {
	_, err := scan.Files(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFilesSkipsUnreadableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	root := t.TempDir()
	write(t, root, "a.txt", "x")
	write(t, root, "locked/b.txt", "y")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	paths, err := scan.Files(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, paths)
}
