package agent

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/cognit/core"
)

// Agent produces operations for the hypergraph.
type Agent interface {
	// Name identifies the agent in logs, checkpoints and reports.
	Name() string

	// Startup validates configuration. It is called once, before Produce.
	Startup(ctx context.Context) error

	// Produce returns the agent's operations as a lazy sequence.
	// The sequence can be consumed once; a non-nil error ends it.
	Produce(ctx context.Context) iter.Seq2[core.Operation, error]

	// Summarize reports the agent's counters after Produce was drained.
	Summarize() string
}

// Stats holds the counters every agent keeps.
type Stats struct {
	Operations int // Operations yielded
	Units      int // Input units consumed (paragraphs, edges, ...)
}

// Base carries what all agents share. Embed it and call its helpers from
// Startup and Produce.
type Base struct {
	name     string
	progress Progress
	logger   *slog.Logger
	started  bool
	produced bool
	stats    Stats
}

// Option configures a Base.
type Option func(*Base)

// WithProgress sets the progress indicator. A nil indicator disables
// progress reporting.
func WithProgress(p Progress) Option {
	return func(b *Base) {
		if p == nil {
			p = NoProgress{}
		}
		b.progress = p
	}
}

// WithProgressWriter reports progress as text on w.
func WithProgressWriter(w io.Writer) Option {
	return func(b *Base) {
		b.progress = NewProgressTracker(w, DefaultReportInterval)
	}
}

// WithoutProgress disables progress reporting.
func WithoutProgress() Option {
	return WithProgress(nil)
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Base) {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
	}
}

// NewBase creates a Base. By default progress is reported on stderr.
func NewBase(name string, opts ...Option) Base {
	b := Base{
		name:     name,
		progress: NewProgressTracker(os.Stderr, DefaultReportInterval),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	b.logger = b.logger.With("agent", name)
	return b
}

// Name returns the agent name.
func (b *Base) Name() string {
	return b.name
}

// Logger returns the agent's logger.
func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// Stats returns the counters of the current run.
func (b *Base) Stats() Stats {
	return b.stats
}

// MarkStarted records a successful Startup.
func (b *Base) MarkStarted() {
	b.started = true
}

// Begin guards the start of Produce. It fails if Startup has not
// succeeded or if Produce already ran.
func (b *Base) Begin() error {
	if !b.started {
		return fmt.Errorf("%w: %s", ErrNotStarted, b.name)
	}
	if b.produced {
		return fmt.Errorf("%w: %s", ErrAlreadyProduced, b.name)
	}
	b.produced = true
	return nil
}

// StartProgress begins progress reporting over total input units.
func (b *Base) StartProgress(total int) {
	b.progress.Start(total)
}

// Advance records one consumed input unit, whatever it yielded.
func (b *Base) Advance() {
	b.stats.Units++
	b.progress.Advance()
}

// FinishProgress ends progress reporting.
func (b *Base) FinishProgress() {
	b.progress.Finish()
}

// Emit counts op and hands it to yield. It returns false when the
// consumer stopped pulling.
func (b *Base) Emit(yield func(core.Operation, error) bool, op core.Operation) bool {
	b.stats.Operations++
	return yield(op, nil)
}

// Summarize renders the generic counters.
func (b *Base) Summarize() string {
	return fmt.Sprintf("operations: %d\ninput units: %d", b.stats.Operations, b.stats.Units)
}

// Failed returns a sequence that yields err once. Agents return it
// from Produce when Begin fails.
func Failed(err error) iter.Seq2[core.Operation, error] {
	return func(yield func(core.Operation, error) bool) {
		yield(core.Operation{}, err)
	}
}
