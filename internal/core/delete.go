package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrProtectedPath is returned when a deletion targets a path on the
// never-delete list.
var ErrProtectedPath = errors.New("refusing to delete protected path")

// SafeRemover deletes directory trees, refusing the filesystem root, the
// user's home directory and any extra protected paths.
type SafeRemover struct {
	protected map[string]bool
}

// NewSafeRemover builds a remover that also protects the given paths.
func NewSafeRemover(extra ...string) *SafeRemover {
	r := &SafeRemover{protected: make(map[string]bool)}
	for _, p := range append(neverDeletePaths(), extra...) {
		if p == "" {
			continue
		}
		r.protected[normalize(p)] = true
	}
	return r
}

// IsProtected reports whether path is on the never-delete list.
func (r *SafeRemover) IsProtected(path string) bool {
	clean := normalize(path)
	if r.protected[clean] {
		return true
	}
	// A volume root (/, C:\) is always protected.
	return filepath.Dir(clean) == clean
}

// RemoveAll deletes path and everything below it.
func (r *SafeRemover) RemoveAll(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrProtectedPath)
	}
	if r.IsProtected(path) {
		return fmt.Errorf("%w: %s", ErrProtectedPath, path)
	}
	return os.RemoveAll(LongPath(path))
}

// neverDeletePaths lists locations that are never valid sweep targets.
func neverDeletePaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}
	return paths
}

func normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.Clean(abs)
	if os.PathSeparator == '\\' {
		abs = strings.ToLower(abs)
	}
	return abs
}
