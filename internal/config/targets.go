package config

import "sort"

// MultiEnvDir is the directory name tox uses to hold one venv per test
// environment. A venv whose parent has this name counts as reproducible.
const MultiEnvDir = ".tox"

// DefaultDays is the age threshold applied when neither flag nor config
// file sets one.
const DefaultDays = 180

// DefaultCacheDirs are tool cache directory names. Matching is exact on the
// base name and a match is always removable.
var DefaultCacheDirs = []string{
	".mypy_cache",
	".ruff_cache",
	".pytest_cache",
}

// DefaultPackageFiles are dependency manifests whose presence next to a venv
// proves the environment can be rebuilt.
var DefaultPackageFiles = []string{
	"pyproject.toml",
	"poetry.lock",
	"uv.lock",
	"requirements.txt",
	"setup.py",
	"setup.cfg",
	"requirements-dev.txt",
	"Pipfile",
	"Pipfile.lock",
	"environment.yml",
	"conda-env.yml",
}

// VenvMarker is a path, relative to a candidate directory, whose existence
// identifies a virtual environment.
type VenvMarker struct {
	// Elems are joined with filepath.Join.
	Elems []string

	// Description is a human-readable label used in debug output.
	Description string
}

// VenvMarkers lists the venv markers in the order they are probed.
var VenvMarkers = []VenvMarker{
	{Elems: []string{"pyvenv.cfg"}, Description: "venv config"},
	{Elems: []string{"bin", "activate"}, Description: "unix activation script"},
	{Elems: []string{"Scripts", "activate.bat"}, Description: "windows activation script"},
}

// Targets is the effective set of name tables used by classification.
type Targets struct {
	CacheDirs    map[string]bool
	PackageFiles []string
	Markers      []VenvMarker
	Exclude      map[string]bool
}

// NewTargets builds lookup tables from the defaults plus any extra entries.
// Duplicates are dropped.
func NewTargets(extraCacheDirs, extraPackageFiles, exclude []string) *Targets {
	t := &Targets{
		CacheDirs: make(map[string]bool, len(DefaultCacheDirs)+len(extraCacheDirs)),
		Markers:   VenvMarkers,
		Exclude:   make(map[string]bool, len(exclude)),
	}
	for _, name := range DefaultCacheDirs {
		t.CacheDirs[name] = true
	}
	for _, name := range extraCacheDirs {
		if name != "" {
			t.CacheDirs[name] = true
		}
	}

	seen := make(map[string]bool)
	for _, group := range [][]string{DefaultPackageFiles, extraPackageFiles} {
		for _, name := range group {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			t.PackageFiles = append(t.PackageFiles, name)
		}
	}

	for _, name := range exclude {
		if name != "" {
			t.Exclude[name] = true
		}
	}
	return t
}

// DefaultTargets returns the built-in tables with no additions.
func DefaultTargets() *Targets {
	return NewTargets(nil, nil, nil)
}

// CacheDirNames returns the cache names sorted.
func (t *Targets) CacheDirNames() []string {
	return sortedKeys(t.CacheDirs)
}

// ExcludeNames returns the excluded names sorted.
func (t *Targets) ExcludeNames() []string {
	return sortedKeys(t.Exclude)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
