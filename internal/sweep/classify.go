package sweep

import (
	"os"
	"path/filepath"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
)

// Kind is the classification of a directory.
type Kind int

const (
	KindNone Kind = iota
	KindCache
	KindVenv
)

func (k Kind) String() string {
	switch k {
	case KindCache:
		return "cache"
	case KindVenv:
		return "venv"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Classifier decides whether a directory is a cache or a venv, and whether
// it may be removed. It never modifies the filesystem.
type Classifier struct {
	targets *config.Targets
	sink    Sink
}

// NewClassifier returns a classifier over the given tables. A nil targets
// uses the defaults; a nil sink discards diagnostics.
func NewClassifier(targets *config.Targets, sink Sink) *Classifier {
	if targets == nil {
		targets = config.DefaultTargets()
	}
	if sink == nil {
		sink = NopSink
	}
	return &Classifier{targets: targets, sink: sink}
}

// Classify returns KindCache when the base name is a known cache name,
// KindVenv when any venv marker exists inside path, KindNone otherwise.
// The cache check wins and skips marker probing.
func (c *Classifier) Classify(path string) Kind {
	if c.targets.CacheDirs[filepath.Base(path)] {
		return KindCache
	}
	for _, m := range c.targets.Markers {
		elems := append([]string{path}, m.Elems...)
		if exists(filepath.Join(elems...)) {
			return KindVenv
		}
	}
	return KindNone
}

// HasPackageEvidence reports whether the parent of path is a tox env dir or
// contains a known dependency manifest.
func (c *Classifier) HasPackageEvidence(path string) bool {
	parent := filepath.Dir(filepath.Clean(path))
	if filepath.Base(parent) == config.MultiEnvDir {
		return true
	}
	for _, name := range c.targets.PackageFiles {
		if exists(filepath.Join(parent, name)) {
			return true
		}
	}
	return false
}

// ShouldRemove classifies path and applies the removal policy: caches
// always qualify, venvs only with package evidence.
func (c *Classifier) ShouldRemove(path string) (Kind, bool) {
	kind := c.Classify(path)
	switch kind {
	case KindCache:
		return kind, true
	case KindVenv:
		if !c.HasPackageEvidence(path) {
			c.sink.Handle(Event{
				Kind:   EventSkipped,
				Path:   path,
				Reason: "no package management files found",
			})
			return kind, false
		}
		return kind, true
	default:
		return kind, false
	}
}

// exists treats any stat error, permission errors included, as absence.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
