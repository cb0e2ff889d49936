// Package events defines the structured-event contract the estimator
// orchestrator emits against. Per spec §1, log sinks are an external
// collaborator: the core only needs an interface to push events through.
// This package also ships a reference Sink backed by
// github.com/rs/zerolog, used by this module's own tests and available
// to callers who don't want to write their own.
package events

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Kind identifies the shape of an Event's Fields.
type Kind string

const (
	// FitStarted fires once per Fit/PartialFit call before any sample is
	// processed.
	FitStarted Kind = "fit_started"
	// EpochCompleted fires once per epoch. When a classifier's
	// params.Verbose is set it also carries a copy of the clause outputs
	// of the epoch's last sample; no aggregate vote/feedback statistics
	// are attached, and the regressor's events ignore Verbose.
	EpochCompleted Kind = "epoch_completed"
	// FitCompleted fires once per Fit/PartialFit call after the last
	// epoch.
	FitCompleted Kind = "fit_completed"
)

// Event is one structured record. Fields is intentionally loose
// (map[string]any) so the orchestrator can attach whatever is relevant
// to Kind without this package growing a struct per event shape.
type Event struct {
	Kind   Kind
	Time   time.Time
	Fields map[string]any
}

// Sink receives events. Implementations must not block the orchestrator
// for long: Fit holds no locks while calling Emit, but a slow sink will
// slow down training since emission is synchronous with the epoch loop.
type Sink interface {
	Emit(Event)
}

// NopSink discards every event. This is the default when an estimator
// is constructed without an explicit sink.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// ZerologSink adapts Sink to a zerolog.Logger, one log line per event
// with Fields flattened onto the line.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink builds a sink writing structured JSON lines to w.
func NewZerologSink(w io.Writer) *ZerologSink {
	return &ZerologSink{logger: zerolog.New(w).With().Timestamp().Logger()}
}

func (s *ZerologSink) Emit(e Event) {
	evt := s.logger.Info().Str("kind", string(e.Kind))
	for k, v := range e.Fields {
		evt = evt.Interface(k, v)
	}
	evt.Msg(string(e.Kind))
}
