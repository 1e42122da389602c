package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
)

const dateLayout = "2006-01-02"

// Reporter prints per-directory progress and the final summary. It is a
// sweep.Sink; diagnostic events are ignored here and left to the logger.
type Reporter struct {
	w      io.Writer
	format Format

	title   lipgloss.Style
	path    lipgloss.Style
	detail  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
}

// NewReporter builds a reporter writing to w. format must already be
// resolved (not FormatAuto); FormatAuto is treated as text.
func NewReporter(w io.Writer, format Format) *Reporter {
	r := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Reporter{
		w:       w,
		format:  format,
		title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		path:    r.NewStyle().Foreground(ColorSecondary),
		detail:  r.NewStyle().Foreground(ColorTextDim),
		success: r.NewStyle().Foreground(ColorSuccess),
		failure: r.NewStyle().Foreground(ColorError),
		hint:    r.NewStyle().Italic(true).Foreground(ColorMuted),
	}
}

// Start prints the run header.
func (r *Reporter) Start(root string, s *sweep.Summary) {
	if r.format == FormatJSON {
		return
	}
	fmt.Fprintln(r.w, r.title.Render(fmt.Sprintf(
		"Searching for virtual environments older than %d days in '%s'...", s.Days, root)))
	fmt.Fprintln(r.w, r.detail.Render("Cutoff date: "+s.Cutoff.Format(dateLayout)))
	dry := "no"
	if s.DryRun {
		dry = "yes"
	}
	fmt.Fprintln(r.w, r.detail.Render("Dry run: "+dry))
	fmt.Fprintln(r.w)
}

// Handle implements sweep.Sink.
func (r *Reporter) Handle(e sweep.Event) {
	if r.format == FormatJSON || e.Kind.Diagnostic() {
		return
	}

	switch e.Kind {
	case sweep.EventFound:
		c := e.Candidate
		label := "virtual environment"
		if c.Kind == sweep.KindCache {
			label = "cache directory"
		}
		fmt.Fprintf(r.w, "%s Found old %s: %s\n", IconSearch, label, r.path.Render(c.Path))
		fmt.Fprintln(r.w, r.detail.Render(fmt.Sprintf("   %s Last modified: %s", IconCalendar, c.ModTime.Format(dateLayout))))
		fmt.Fprintln(r.w, r.detail.Render(fmt.Sprintf("   %s Size: %s", IconDisk, core.FormatSize(c.Size))))
	case sweep.EventDryRun:
		fmt.Fprintln(r.w, r.hint.Render(fmt.Sprintf("   %s Dry run: not deleted", IconDryRun)))
		fmt.Fprintln(r.w)
	case sweep.EventRemoving:
		fmt.Fprintf(r.w, "   %s Deleting...\n", IconTrash)
	case sweep.EventRemoved:
		fmt.Fprintln(r.w, r.success.Render(fmt.Sprintf("   %s Deleted", IconSuccess)))
		fmt.Fprintln(r.w)
	case sweep.EventFailed:
		fmt.Fprintln(r.w, r.failure.Render(fmt.Sprintf("   %s Delete error: %v", IconError, e.Err)))
		fmt.Fprintln(r.w)
	}
}

// Report is the JSON document written in FormatJSON.
type Report struct {
	*sweep.Summary
	DiskBefore *core.VolumeUsage `json:"disk_before,omitempty"`
	DiskAfter  *core.VolumeUsage `json:"disk_after,omitempty"`
}

// Summary prints the result block. before and after may be nil when disk
// usage could not be read.
func (r *Reporter) Summary(s *sweep.Summary, before, after *core.VolumeUsage) error {
	if r.format == FormatJSON {
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(Report{Summary: s, DiskBefore: before, DiskAfter: after})
	}

	verb := "Freed"
	if s.DryRun {
		verb = "Would free"
	}

	fmt.Fprintln(r.w, r.title.Render("Result summary:"))
	fmt.Fprintf(r.w, "- Detected old virtual environments: %d\n", s.Count)
	fmt.Fprintf(r.w, "- %s total capacity: %s\n", verb, core.FormatSize(s.Bytes))
	if s.Failed > 0 {
		fmt.Fprintln(r.w, r.failure.Render(fmt.Sprintf("- Failed deletions: %d", s.Failed)))
	}
	if before != nil && after != nil {
		fmt.Fprintf(r.w, "- Free space on %s: %s %s %s\n",
			before.Mountpoint,
			core.FormatSize(int64(before.Free)), IconChevron, core.FormatSize(int64(after.Free)))
	} else if before != nil {
		fmt.Fprintf(r.w, "- Free space on %s: %s\n", before.Mountpoint, core.FormatSize(int64(before.Free)))
	}

	if s.DryRun && s.Count > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.hint.Render("To actually delete, add the --execute flag"))
	}
	return nil
}
