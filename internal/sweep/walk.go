package sweep

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
)

// CheckRoot fails only when root does not exist. A regular file is a
// valid root that simply contains no directories.
func CheckRoot(root string) error {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("'%s' is %w", root, ErrInvalidRoot)
		}
		return fmt.Errorf("cannot access '%s': %w", root, err)
	}
	return nil
}

// Walk returns root and every directory below it, shallowest first.
// Symlinks, junctions and excluded names are neither returned nor
// descended into; the exclude list does not apply to root itself. The
// full list is built before returning, so callers may delete entries
// while iterating it.
func Walk(ctx context.Context, root string, exclude map[string]bool, sink Sink) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink
	}
	root = filepath.Clean(root)

	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root && d == nil {
				return err
			}
			sink.Handle(Event{Kind: EventWalkError, Path: path, Err: err})
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && exclude[d.Name()] {
			return filepath.SkipDir
		}
		if core.IsReparsePoint(path) {
			sink.Handle(Event{Kind: EventWalkError, Path: path, Reason: "skipping junction/reparse point"})
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		if len(dirs[i]) != len(dirs[j]) {
			return len(dirs[i]) < len(dirs[j])
		}
		return dirs[i] < dirs[j]
	})
	return dirs, nil
}
