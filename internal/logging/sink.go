package logging

import (
	"github.com/rs/zerolog"

	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
)

// Sink writes sweep events to a zerolog logger. Skip decisions and
// partial-size errors are debug level, failed deletions are errors.
type Sink struct {
	logger zerolog.Logger
}

// NewSink wraps logger as a sweep.Sink.
func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Handle implements sweep.Sink.
func (s *Sink) Handle(e sweep.Event) {
	var ev *zerolog.Event
	switch e.Kind {
	case sweep.EventFailed:
		ev = s.logger.Error()
	case sweep.EventRemoved:
		ev = s.logger.Info()
	default:
		ev = s.logger.Debug()
	}

	ev = ev.Str("event", e.Kind.String()).Str("path", e.Path)
	if e.Reason != "" {
		ev = ev.Str("reason", e.Reason)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	if c := e.Candidate; c != nil {
		ev = ev.Str("kind", c.Kind.String()).
			Time("lastModified", c.ModTime).
			Int64("size", c.Size)
	}
	ev.Msg(message(e.Kind))
}

func message(k sweep.EventKind) string {
	switch k {
	case sweep.EventWalkError:
		return "Cannot read directory"
	case sweep.EventSkipped:
		return "Skipping directory"
	case sweep.EventSizeError:
		return "Error calculating size"
	case sweep.EventFound:
		return "Found stale directory"
	case sweep.EventDryRun:
		return "Dry run: not deleted"
	case sweep.EventRemoving:
		return "Deleting directory"
	case sweep.EventRemoved:
		return "Deleted directory"
	case sweep.EventFailed:
		return "Delete error"
	default:
		return "Sweep event"
	}
}
