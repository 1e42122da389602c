package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk_RootFirstThenShallowest(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "a", "bb", "ccc")
	mkdir(t, root, "b")
	writeFile(t, "x", root, "a", "file.txt")

	dirs, err := Walk(context.Background(), root, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		root,
		filepath.Join(root, "a"),
		filepath.Join(root, "b"),
		filepath.Join(root, "a", "bb"),
		filepath.Join(root, "a", "bb", "ccc"),
	}, dirs)
}

func TestWalk_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	outside := mkdir(t, t.TempDir(), "real")
	mkdir(t, outside, "nested")
	symlinkOrSkip(t, outside, filepath.Join(root, "link"))

	dirs, err := Walk(context.Background(), root, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, dirs)
}

func TestWalk_SymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	sub := mkdir(t, root, "sub")
	symlinkOrSkip(t, root, filepath.Join(sub, "loop"))

	dirs, err := Walk(context.Background(), root, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{root, sub}, dirs)
}

func TestWalk_Exclude(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "node_modules", "pkg", ".mypy_cache")
	keep := mkdir(t, root, "src")

	dirs, err := Walk(context.Background(), root, map[string]bool{"node_modules": true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{root, keep}, dirs)
}

func TestWalk_ExcludeDoesNotApplyToRoot(t *testing.T) {
	root := mkdir(t, t.TempDir(), "node_modules")
	inner := mkdir(t, root, "node_modules")

	dirs, err := Walk(context.Background(), root, map[string]bool{"node_modules": true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, dirs)
	assert.NotContains(t, dirs, inner)
}

func TestWalk_InvalidRoot(t *testing.T) {
	_, err := Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRoot)

}

func TestWalk_FileRootYieldsNothing(t *testing.T) {
	file := writeFile(t, "x", t.TempDir(), "file")

	require.NoError(t, CheckRoot(file))
	dirs, err := Walk(context.Background(), file, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestWalk_UnreadableSubtreeIsReported(t *testing.T) {
	skipIfPermissionsIgnored(t)

	root := t.TempDir()
	locked := mkdir(t, root, "locked")
	mkdir(t, locked, "hidden")
	open := mkdir(t, root, "open")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	rec := &recorder{}
	dirs, err := Walk(context.Background(), root, nil, rec)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{root, locked, open}, dirs)
	assert.Contains(t, rec.kinds(locked), EventWalkError)
}

func TestWalk_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Walk(ctx, t.TempDir(), nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
