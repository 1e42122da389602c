package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
)

var (
	// Global flags
	debug        bool
	noColor      bool
	configPath   string
	outputFormat string

	// Sweep flags
	directory   string
	days        int
	execute     bool
	interactive bool
	exclude     []string

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "venvsweep",
	Short: "Remove stale Python virtual environments and tool caches",
	Long: `venvsweep - reclaim disk space from old Python environments.

Walks a directory tree looking for virtual environments (pyvenv.cfg,
bin/activate, Scripts/activate.bat) and tool caches (.mypy_cache,
.ruff_cache, .pytest_cache) that have not been modified for a number of
days. Venvs are only removed when a package manifest (pyproject.toml,
requirements.txt, ...) sits next to them, so they can be rebuilt.

Runs as a dry run unless --execute is given.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPurge,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: "+config.DefaultPath()+")")

	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "Directory to start search")
	rootCmd.Flags().IntVar(&days, "days", config.DefaultDays, "Delete directories older than this number of days")
	rootCmd.Flags().BoolVar(&execute, "execute", false, "Actually delete the directories (default is a dry run)")
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick which directories to delete before deleting")
	rootCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directory names not to descend into")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "auto", "Output format (auto, text, term, json)")
	_ = rootCmd.MarkFlagRequired("directory")
	_ = rootCmd.MarkFlagDirname("directory")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Register all subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
