package sweep

// EventKind identifies what happened to a directory during a sweep.
type EventKind int

const (
	// EventWalkError reports an unreadable directory during traversal.
	EventWalkError EventKind = iota
	// EventSkipped reports a recognized directory that is not eligible.
	EventSkipped
	// EventSizeError reports a partial size because part of a tree could not be read.
	EventSizeError
	// EventFound reports an eligible candidate, before any action.
	EventFound
	// EventDryRun reports a candidate left in place because of dry-run mode.
	EventDryRun
	// EventRemoving is emitted right before a deletion starts.
	EventRemoving
	// EventRemoved reports a successful deletion.
	EventRemoved
	// EventFailed reports a failed deletion.
	EventFailed
)

var eventNames = [...]string{
	EventWalkError: "walk_error",
	EventSkipped:   "skipped",
	EventSizeError: "size_error",
	EventFound:     "found",
	EventDryRun:    "dry_run",
	EventRemoving:  "removing",
	EventRemoved:   "removed",
	EventFailed:    "failed",
}

func (k EventKind) String() string {
	if int(k) < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Diagnostic reports whether the event is debug-level noise rather than
// user-facing progress.
func (k EventKind) Diagnostic() bool {
	return k == EventWalkError || k == EventSkipped || k == EventSizeError
}

// Event is a single progress or diagnostic notification.
type Event struct {
	Kind   EventKind
	Path   string
	Reason string
	Err    error

	// Candidate is set for EventFound and every later stage.
	Candidate *Candidate
}

// Sink receives events from the sweep. Implementations must not retain
// Candidate beyond the call.
type Sink interface {
	Handle(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Handle calls f(e).
func (f SinkFunc) Handle(e Event) { f(e) }

// NopSink discards all events.
var NopSink Sink = SinkFunc(func(Event) {})

// MultiSink fans events out in order.
type MultiSink []Sink

// Handle forwards e to every non-nil sink.
func (m MultiSink) Handle(e Event) {
	for _, s := range m {
		if s != nil {
			s.Handle(e)
		}
	}
}
