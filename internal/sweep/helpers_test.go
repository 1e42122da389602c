package sweep

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder collects events for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) Handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds(path string) []EventKind {
	var out []EventKind
	for _, e := range r.events {
		if e.Path == path {
			out = append(out, e.Kind)
		}
	}
	return out
}

func mkdir(t *testing.T, elems ...string) string {
	t.Helper()
	p := filepath.Join(elems...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func writeFile(t *testing.T, content string, elems ...string) string {
	t.Helper()
	p := filepath.Join(elems...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// age sets the mtime of path to the given number of days in the past. It
// must run after the directory's direct contents are in place.
func age(t *testing.T, path string, days int) {
	t.Helper()
	ts := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, ts, ts))
}

// skipIfPermissionsIgnored skips tests that rely on permission bits.
func skipIfPermissionsIgnored(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits not enforced")
	}
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}
