package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppDirName is the per-user directory name under the XDG base dirs.
const AppDirName = "venvsweep"

// FileName is the config file name inside AppDirName.
const FileName = "config.toml"

// File is the on-disk user configuration. List fields extend the built-in
// tables rather than replacing them.
type File struct {
	Days         *int     `toml:"days,omitempty"`
	CacheDirs    []string `toml:"cache_dirs,omitempty"`
	PackageFiles []string `toml:"package_files,omitempty"`
	Exclude      []string `toml:"exclude,omitempty"`
}

// DefaultPath returns $XDG_CONFIG_HOME/venvsweep/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, FileName)
}

// Load reads the config at path. With explicit=false a missing file yields
// an empty config; with explicit=true it is an error.
func Load(path string, explicit bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %s: %w", path, err)
	}
	if f.Days != nil && *f.Days < 0 {
		return nil, fmt.Errorf("invalid days %d in %s: must be >= 0", *f.Days, path)
	}
	return &f, nil
}

// DaysOr returns the configured threshold, or fallback when unset.
func (f *File) DaysOr(fallback int) int {
	if f == nil || f.Days == nil {
		return fallback
	}
	return *f.Days
}

// Targets merges the file's lists with the defaults. extraExclude comes
// from the command line.
func (f *File) Targets(extraExclude []string) *Targets {
	if f == nil {
		return NewTargets(nil, nil, extraExclude)
	}
	exclude := append(append([]string(nil), f.Exclude...), extraExclude...)
	return NewTargets(f.CacheDirs, f.PackageFiles, exclude)
}

// Effective is the resolved configuration printed by `venvsweep config`.
type Effective struct {
	Days         int      `toml:"days"`
	CacheDirs    []string `toml:"cache_dirs"`
	PackageFiles []string `toml:"package_files"`
	Exclude      []string `toml:"exclude"`
}

// Encode renders e as TOML.
func (e Effective) Encode() ([]byte, error) {
	out, err := toml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}
