//go:generate mockgen -destination=./mocks/remover.go -package=mocks . Remover

package sweep

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
)

// Remover deletes a directory tree.
type Remover interface {
	RemoveAll(path string) error
}

// Outcome is the terminal state of a recognized directory.
type Outcome int

const (
	// OutcomeIneligible: recognized but too recent or lacking package evidence.
	OutcomeIneligible Outcome = iota
	// OutcomeDryRun: eligible, left in place, counted as if removed.
	OutcomeDryRun
	// OutcomeRemoved: eligible and deleted.
	OutcomeRemoved
	// OutcomeFailed: eligible, deletion failed, not counted.
	OutcomeFailed
	// OutcomePending: eligible, not acted on yet (Plan output).
	OutcomePending
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDryRun:
		return "dry_run"
	case OutcomeRemoved:
		return "removed"
	case OutcomeFailed:
		return "failed"
	case OutcomePending:
		return "pending"
	default:
		return "ineligible"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Candidate is a directory that passed classification.
type Candidate struct {
	Path    string    `json:"path"`
	Kind    Kind      `json:"kind"`
	ModTime time.Time `json:"last_modified"`
	Size    int64     `json:"size"`
	Outcome Outcome   `json:"outcome"`
	Err     error     `json:"-"`
	Error   string    `json:"error,omitempty"`
}

// Counted reports whether the candidate contributes to the summary totals.
func (c *Candidate) Counted() bool {
	return c.Outcome == OutcomeDryRun || c.Outcome == OutcomeRemoved
}

// Summary aggregates a sweep.
type Summary struct {
	Root    string    `json:"root"`
	DryRun  bool      `json:"dry_run"`
	Days    int       `json:"days"`
	Cutoff  time.Time `json:"cutoff"`
	Scanned int       `json:"scanned"`

	// Count and Bytes cover removed candidates, or would-be removed ones
	// in dry-run mode.
	Count  int   `json:"count"`
	Bytes  int64 `json:"bytes"`
	Failed int   `json:"failed"`

	Candidates []Candidate `json:"candidates"`
}

func (s *Summary) record(c *Candidate) {
	if c.Counted() {
		s.Count++
		s.Bytes += c.Size
	}
	if c.Outcome == OutcomeFailed {
		s.Failed++
	}
	s.Candidates = append(s.Candidates, *c)
}

// Options control a sweep.
type Options struct {
	// Days is the age threshold; directories modified before now-Days qualify.
	Days int
	// DryRun reports instead of deleting.
	DryRun bool
	// Now is the clock; defaults to time.Now.
	Now func() time.Time
}

// Sweeper runs the walk, classify, evaluate and act pipeline.
type Sweeper struct {
	classifier *Classifier
	exclude    map[string]bool
	remover    Remover
	sink       Sink
	opts       Options
}

// New builds a Sweeper. A nil remover uses core.SafeRemover; a nil sink
// discards events.
func New(targets *config.Targets, remover Remover, sink Sink, opts Options) (*Sweeper, error) {
	if opts.Days < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeDays, opts.Days)
	}
	if targets == nil {
		targets = config.DefaultTargets()
	}
	if remover == nil {
		remover = core.NewSafeRemover()
	}
	if sink == nil {
		sink = NopSink
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sweeper{
		classifier: NewClassifier(targets, sink),
		exclude:    targets.Exclude,
		remover:    remover,
		sink:       sink,
		opts:       opts,
	}, nil
}

// Classifier exposes the sweeper's classifier.
func (s *Sweeper) Classifier() *Classifier {
	return s.classifier
}

// Cutoff returns the instant before which a directory counts as stale.
func (s *Sweeper) Cutoff() time.Time {
	return s.opts.Now().Add(-time.Duration(s.opts.Days) * 24 * time.Hour)
}

// Run sweeps root, acting on each eligible directory as soon as it is
// evaluated. Per-directory failures never abort the run; only an invalid
// root or a cancelled context return an error, along with the partial
// summary.
func (s *Sweeper) Run(ctx context.Context, root string) (*Summary, error) {
	return s.sweep(ctx, root, true)
}

// Plan evaluates root without acting. Eligible candidates are returned
// with OutcomePending and can be passed to Apply.
func (s *Sweeper) Plan(ctx context.Context, root string) (*Summary, error) {
	return s.sweep(ctx, root, false)
}

// Apply acts on previously planned candidates in order. Candidates that
// are not pending are ignored.
func (s *Sweeper) Apply(ctx context.Context, root string, candidates []Candidate) (*Summary, error) {
	summary := s.newSummary(root)
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		c := candidates[i]
		if c.Outcome != OutcomePending {
			continue
		}
		s.act(&c)
		summary.record(&c)
	}
	return summary, nil
}

func (s *Sweeper) newSummary(root string) *Summary {
	return &Summary{
		Root:   root,
		DryRun: s.opts.DryRun,
		Days:   s.opts.Days,
		Cutoff: s.Cutoff(),
	}
}

func (s *Sweeper) sweep(ctx context.Context, root string, act bool) (*Summary, error) {
	summary := s.newSummary(root)

	dirs, err := Walk(ctx, root, s.exclude, s.sink)
	if err != nil {
		return summary, err
	}
	summary.Scanned = len(dirs)

	cutoff := summary.Cutoff
	claimed := make(map[string]bool)

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if underClaimed(dir, root, claimed) {
			continue
		}

		c, ok := s.evaluate(dir, cutoff)
		if !ok {
			continue
		}
		if c.Outcome == OutcomeIneligible {
			summary.Candidates = append(summary.Candidates, *c)
			continue
		}

		if act {
			s.act(c)
		}
		if c.Counted() || c.Outcome == OutcomePending {
			claimed[filepath.Clean(dir)] = true
		}
		summary.record(c)
	}
	return summary, nil
}

// evaluate classifies dir and, when it qualifies, measures age and size.
// ok is false for directories that are not recognized or no longer exist.
func (s *Sweeper) evaluate(dir string, cutoff time.Time) (*Candidate, bool) {
	info, err := os.Lstat(dir)
	if err != nil || !info.IsDir() || info.Mode()&os.ModeSymlink != 0 || core.IsReparsePoint(dir) {
		return nil, false
	}

	kind, remove := s.classifier.ShouldRemove(dir)
	if !remove {
		return nil, false
	}

	modTime, err := LastModified(dir)
	if err != nil {
		s.sink.Handle(Event{Kind: EventWalkError, Path: dir, Err: err})
		return nil, false
	}

	c := &Candidate{Path: dir, Kind: kind, ModTime: modTime, Outcome: OutcomeIneligible}
	if !modTime.Before(cutoff) {
		s.sink.Handle(Event{
			Kind:      EventSkipped,
			Path:      dir,
			Reason:    "modified after cutoff",
			Candidate: c,
		})
		return c, true
	}

	c.Size = DirSize(dir, s.sink)
	c.Outcome = OutcomePending
	s.sink.Handle(Event{Kind: EventFound, Path: dir, Candidate: c})
	return c, true
}

// act moves an eligible candidate to its terminal state.
func (s *Sweeper) act(c *Candidate) {
	if s.opts.DryRun {
		c.Outcome = OutcomeDryRun
		s.sink.Handle(Event{Kind: EventDryRun, Path: c.Path, Candidate: c})
		return
	}

	s.sink.Handle(Event{Kind: EventRemoving, Path: c.Path, Candidate: c})
	if err := s.remover.RemoveAll(c.Path); err != nil {
		c.Outcome = OutcomeFailed
		c.Err = err
		c.Error = err.Error()
		s.sink.Handle(Event{Kind: EventFailed, Path: c.Path, Err: err, Candidate: c})
		return
	}
	c.Outcome = OutcomeRemoved
	s.sink.Handle(Event{Kind: EventRemoved, Path: c.Path, Candidate: c})
}

// underClaimed reports whether an ancestor of dir, root included, has
// already been removed or flagged.
func underClaimed(dir, root string, claimed map[string]bool) bool {
	if len(claimed) == 0 {
		return false
	}
	root = filepath.Clean(root)
	dir = filepath.Clean(dir)
	if dir == root {
		return false
	}
	for p := filepath.Dir(dir); ; p = filepath.Dir(p) {
		if claimed[p] {
			return true
		}
		if p == root || filepath.Dir(p) == p {
			return false
		}
	}
}
