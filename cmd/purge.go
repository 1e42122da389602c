package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/logging"
	"github.com/lakshaymaurya-felt/venvsweep/internal/review"
	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

// Replaced in tests.
var (
	pickCandidates = review.Run
	isTerminal     = ui.IsInteractive
)

// runPurge is the root command: plan, optionally review, act, report.
func runPurge(cmd *cobra.Command, _ []string) error {
	if err := sweep.CheckRoot(directory); err != nil {
		return err
	}
	root, err := filepath.Abs(directory)
	if err != nil {
		return fmt.Errorf("cannot resolve '%s': %w", directory, err)
	}

	format, err := ui.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	format = ui.Resolve(format, os.Stdout, noColor)
	logging.Setup(debug, format != ui.FormatTerminal, os.Stderr)
	logger := logging.GetLogger("sweep")
	defer logging.LogDuration(logger, time.Now(), "sweep")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	threshold := cfg.DaysOr(config.DefaultDays)
	if cmd.Flags().Changed("days") {
		threshold = days
	}
	if threshold < 0 {
		return fmt.Errorf("invalid --days %d: %w", threshold, sweep.ErrNegativeDays)
	}
	if interactive && !isTerminal() {
		return errors.New("--interactive requires a terminal")
	}

	reporter := ui.NewReporter(cmd.OutOrStdout(), format)
	logSink := logging.NewSink(logger)
	opts := sweep.Options{Days: threshold, DryRun: !execute && !interactive}

	ctx := cmd.Context()
	before := volumeUsage(logger, root)

	var summary *sweep.Summary
	if interactive {
		summary, err = runInteractive(ctx, cmd.OutOrStdout(), root, cfg, reporter, logSink, opts)
		if summary == nil {
			return err
		}
	} else {
		sweeper, newErr := sweep.New(cfg.Targets(exclude), core.NewSafeRemover(), sweep.MultiSink{logSink, reporter}, opts)
		if newErr != nil {
			return newErr
		}
		reporter.Start(root, &sweep.Summary{Days: threshold, DryRun: opts.DryRun, Cutoff: sweeper.Cutoff()})
		summary, err = sweeper.Run(ctx, root)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	var after *core.VolumeUsage
	if !summary.DryRun && summary.Count > 0 {
		after = volumeUsage(logger, root)
	}
	if reportErr := reporter.Summary(summary, before, after); reportErr != nil {
		return reportErr
	}
	if err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	return nil
}

// runInteractive plans quietly, lets the user pick, then deletes the
// selection. A nil summary with nil error means the user cancelled.
func runInteractive(ctx context.Context, out io.Writer, root string, cfg *config.File, reporter *ui.Reporter, logSink sweep.Sink, opts sweep.Options) (*sweep.Summary, error) {
	planner, err := sweep.New(cfg.Targets(exclude), core.NewSafeRemover(), logSink, opts)
	if err != nil {
		return nil, err
	}
	plan, err := planner.Plan(ctx, root)
	if err != nil {
		return nil, err
	}

	var pending []sweep.Candidate
	for _, c := range plan.Candidates {
		if c.Outcome == sweep.OutcomePending {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return plan, nil
	}

	selected, ok, err := pickCandidates(pending)
	if err != nil {
		return nil, fmt.Errorf("interactive review failed: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled, nothing deleted.")
		return nil, nil
	}

	applier, err := sweep.New(cfg.Targets(exclude), core.NewSafeRemover(), sweep.MultiSink{logSink, reporter}, opts)
	if err != nil {
		return nil, err
	}
	reporter.Start(root, &sweep.Summary{Days: opts.Days, DryRun: opts.DryRun, Cutoff: applier.Cutoff()})
	for i := range selected {
		c := &selected[i]
		reporter.Handle(sweep.Event{Kind: sweep.EventFound, Path: c.Path, Candidate: c})
	}
	summary, err := applier.Apply(ctx, root, selected)
	summary.Scanned = plan.Scanned
	return summary, err
}

// loadConfig reads --config, or the default XDG location when unset.
func loadConfig() (*config.File, error) {
	if configPath != "" {
		return config.Load(configPath, true)
	}
	return config.Load(config.DefaultPath(), false)
}

// volumeUsage reads free space for the volume holding path. Failures are
// logged and reported as nil so the summary simply omits the line.
func volumeUsage(logger zerolog.Logger, path string) *core.VolumeUsage {
	usage, err := core.GetVolumeUsage(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("Disk usage unavailable")
		return nil
	}
	return &usage
}
