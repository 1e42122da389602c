package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
)

// runCLI runs the root command with args and a config file written from
// configBody, returning everything printed to stdout.
func runCLI(t *testing.T, configBody string, args ...string) (string, error) {
	t.Helper()

	debug, noColor, configPath, outputFormat = false, false, "", "auto"
	directory, days, execute, interactive, exclude = "", config.DefaultDays, false, false, nil
	reset := func(f *pflag.Flag) { f.Changed = false }
	rootCmd.Flags().VisitAll(reset)
	rootCmd.PersistentFlags().VisitAll(reset)

	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(configBody), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// staleProject creates root/proj/.venv with a manifest, last touched
// ageDays ago.
func staleProject(t *testing.T, root string, ageDays int) string {
	t.Helper()
	proj := filepath.Join(root, "proj")
	venv := filepath.Join(proj, ".venv")
	require.NoError(t, os.MkdirAll(venv, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(proj, "requirements.txt"), []byte("requests\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(venv, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o644))
	ts := time.Now().Add(-time.Duration(ageDays) * 24 * time.Hour)
	require.NoError(t, os.Chtimes(venv, ts, ts))
	return venv
}

func TestRoot_RequiresDirectory(t *testing.T) {
	_, err := runCLI(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestRoot_InvalidDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	_, err := runCLI(t, "", "-d", missing)
	require.ErrorIs(t, err, sweep.ErrInvalidRoot)
	assert.Contains(t, err.Error(), "'"+missing+"' is not a valid directory")
}

func TestRoot_NegativeDays(t *testing.T) {
	_, err := runCLI(t, "", "-d", t.TempDir(), "--days", "-3")
	assert.ErrorIs(t, err, sweep.ErrNegativeDays)
}

func TestRoot_DryRunByDefault(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)

	out, err := runCLI(t, "", "-d", root, "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run: yes")
	assert.Contains(t, out, "Found old virtual environment: "+venv)
	assert.Contains(t, out, "Detected old virtual environments: 1")
	assert.Contains(t, out, "add the --execute flag")
	assert.DirExists(t, venv)
}

func TestRoot_ExecuteDeletes(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)

	out, err := runCLI(t, "", "--directory", root, "--execute", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run: no")
	assert.Contains(t, out, "Freed total capacity")
	assert.NoDirExists(t, venv)
	assert.FileExists(t, filepath.Join(root, "proj", "requirements.txt"))
}

func TestRoot_ConfigDaysAndFlagOverride(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 100)

	out, err := runCLI(t, "days = 30\n", "-d", root, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "older than 30 days")
	assert.Contains(t, out, "Detected old virtual environments: 1")

	out, err = runCLI(t, "days = 30\n", "-d", root, "--days", "365", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected old virtual environments: 0")
	assert.DirExists(t, venv)
}

func TestRoot_ExcludeSkipsSubtree(t *testing.T) {
	root := t.TempDir()
	staleProject(t, root, 400)

	out, err := runCLI(t, "", "-d", root, "--exclude", "proj", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected old virtual environments: 0")
}

func TestRoot_JSONOutput(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)

	out, err := runCLI(t, "", "-d", root, "-o", "json")
	require.NoError(t, err)

	var report struct {
		DryRun     bool `json:"dry_run"`
		Count      int  `json:"count"`
		Candidates []struct {
			Path    string `json:"path"`
			Outcome string `json:"outcome"`
		} `json:"candidates"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Count)
	require.Len(t, report.Candidates, 1)
	assert.Equal(t, venv, report.Candidates[0].Path)
	assert.Equal(t, "dry_run", report.Candidates[0].Outcome)
}

func TestRoot_BadOutputFormat(t *testing.T) {
	_, err := runCLI(t, "", "-d", t.TempDir(), "-o", "yaml")
	assert.Error(t, err)
}

func TestRoot_BadConfigFile(t *testing.T) {
	_, err := runCLI(t, "days = [", "-d", t.TempDir())
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "days = 30\ncache_dirs = [\".nox\"]\n", "config")
	require.NoError(t, err)

	assert.Contains(t, out, "days = 30")
	assert.Contains(t, out, ".nox")
	assert.Contains(t, out, ".mypy_cache")
	assert.Contains(t, out, "pyproject.toml")
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "venvsweep 1.2.3 (commit abc123")
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "venvsweep")

	_, err = runCLI(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestRoot_DirectoryIsTheVenv(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)

	out, err := runCLI(t, "", "-d", venv, "--execute", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Found old virtual environment: "+venv)
	assert.Contains(t, out, "Detected old virtual environments: 1")
	assert.NoDirExists(t, venv)
}

func TestRoot_DirectoryIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "requirements.txt")
	require.NoError(t, os.WriteFile(file, []byte("requests\n"), 0o644))

	out, err := runCLI(t, "", "-d", file, "--execute", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Detected old virtual environments: 0")
	assert.FileExists(t, file)
}

// stubReview replaces the terminal check and the picker for one test.
func stubReview(t *testing.T, pick func([]sweep.Candidate) ([]sweep.Candidate, bool, error)) {
	t.Helper()
	origPick, origTerminal := pickCandidates, isTerminal
	pickCandidates = pick
	isTerminal = func() bool { return true }
	t.Cleanup(func() {
		pickCandidates = origPick
		isTerminal = origTerminal
	})
}

func TestRoot_InteractiveCancelDeletesNothing(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)

	var offered []sweep.Candidate
	stubReview(t, func(items []sweep.Candidate) ([]sweep.Candidate, bool, error) {
		offered = items
		return nil, false, nil
	})

	out, err := runCLI(t, "", "-d", root, "-i", "-o", "text")
	require.NoError(t, err)

	require.Len(t, offered, 1)
	assert.Equal(t, venv, offered[0].Path)
	assert.Contains(t, out, "Cancelled, nothing deleted.")
	assert.DirExists(t, venv)
}

func TestRoot_InteractiveDeletesOnlySelection(t *testing.T) {
	root := t.TempDir()
	venv := staleProject(t, root, 400)
	cache := filepath.Join(root, "lib", ".ruff_cache")
	require.NoError(t, os.MkdirAll(cache, 0o755))
	old := time.Now().Add(-400 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(cache, old, old))

	stubReview(t, func(items []sweep.Candidate) ([]sweep.Candidate, bool, error) {
		var keep []sweep.Candidate
		for _, c := range items {
			if c.Path == cache {
				keep = append(keep, c)
			}
		}
		return keep, true, nil
	})

	out, err := runCLI(t, "", "-d", root, "-i", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Dry run: no")
	assert.Contains(t, out, "Detected old virtual environments: 1")
	assert.NoDirExists(t, cache)
	assert.DirExists(t, venv)
}

func TestRoot_InteractiveNeedsTerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	_, err := runCLI(t, "", "-d", t.TempDir(), "-i")
	assert.Error(t, err)
}
