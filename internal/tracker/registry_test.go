package tracker_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/rewind/internal/tracker"
)

func TestRegistryCanonicalizesRoots(t *testing.T) {
	reg := tracker.NewRegistry()
	root := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	byDot, err := reg.Get(".")
	require.NoError(t, err)
	byAbs, err := reg.Get(root)
	require.NoError(t, err)

	assert.Same(t, byDot, byAbs)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryCreatesPerRoot(t *testing.T) {
	reg := tracker.NewRegistry()

	a, err := reg.Get(t.TempDir())
	require.NoError(t, err)
	b, err := reg.Get(t.TempDir())
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryRejectsEmptyRoot(t *testing.T) {
	reg := tracker.NewRegistry()
	_, err := reg.Get("")
	assert.Error(t, err)
}

func TestRegistryEvict(t *testing.T) {
	reg := tracker.NewRegistry()
	root := t.TempDir()

	first, err := reg.Get(root)
	require.NoError(t, err)
	reg.Evict(root)
	assert.Equal(t, 0, reg.Len())

	second, err := reg.Get(root)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
