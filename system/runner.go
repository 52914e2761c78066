package system

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/cognit/agent"
	"github.com/poiesic/cognit/core"
	"github.com/poiesic/cognit/storage"
)

// Report describes one agent run.
type Report struct {
	Agent      string
	RunID      uuid.UUID
	Operations int
	Duration   time.Duration
	Summary    string
}

// Runner drives agents and applies their operations.
type Runner struct {
	applier     *Applier
	checkpoints storage.CheckpointRepository
	workers     int
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithCheckpoints saves a checkpoint after every run.
func WithCheckpoints(repo storage.CheckpointRepository) Option {
	return func(r *Runner) {
		r.checkpoints = repo
	}
}

// WithWorkers sets the number of agents RunAll runs at once.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRunner creates a runner applying operations to hg.
func NewRunner(hg storage.Hypergraph, opts ...Option) (*Runner, error) {
	if hg == nil {
		return nil, ErrHypergraphRequired
	}
	r := &Runner{
		applier: NewApplier(hg),
		workers: defaultWorkers(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run starts a, applies every operation it produces and saves its
// checkpoint. A startup failure aborts before anything is produced.
// A failure while producing or applying ends the run; operations already
// applied stay in the store and the checkpoint records them.
func (r *Runner) Run(ctx context.Context, a agent.Agent) (*Report, error) {
	runID := uuid.New()
	logger := r.logger.With("agent", a.Name(), "run_id", runID)

	if err := a.Startup(ctx); err != nil {
		logger.Error("agent startup failed", "err", err)
		return nil, fmt.Errorf("agent %s: %w", a.Name(), err)
	}

	start := time.Now()
	checkpoint := &core.Checkpoint{Agent: a.Name(), Position: -1}
	runErr := r.drain(ctx, a.Produce(ctx), checkpoint)

	report := &Report{
		Agent:      a.Name(),
		RunID:      runID,
		Operations: checkpoint.Operations,
		Duration:   time.Since(start),
	}

	if r.checkpoints != nil {
		if err := r.checkpoints.SaveCheckpoint(ctx, checkpoint); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("save checkpoint: %w", err))
		}
	}

	if runErr != nil {
		logger.Error("agent run failed", "operations", report.Operations, "err", runErr)
		return report, fmt.Errorf("agent %s: %w", a.Name(), runErr)
	}

	report.Summary = a.Summarize()
	logger.Info("agent run finished", "operations", report.Operations, "duration", report.Duration)
	return report, nil
}

func (r *Runner) drain(ctx context.Context, ops iter.Seq2[core.Operation, error], checkpoint *core.Checkpoint) error {
	for op, err := range ops {
		if err != nil {
			return err
		}
		if err := r.applier.Apply(ctx, op); err != nil {
			return err
		}
		checkpoint.Operations++
		if pos, ok := op.Position(); ok {
			checkpoint.Sequence = op.Sequence()
			checkpoint.Position = pos
		}
	}
	return nil
}

// RunAll runs independent agents concurrently on a worker pool. Reports
// are returned in the order of agents; a failed agent leaves a nil entry
// unless it got past startup. All errors are joined.
func (r *Runner) RunAll(ctx context.Context, agents ...agent.Agent) ([]*Report, error) {
	reports := make([]*Report, len(agents))
	if len(agents) == 0 {
		return reports, nil
	}

	pool, err := ants.NewPool(min(r.workers, len(agents)))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	errs := make([]error, len(agents))
	var wg sync.WaitGroup
	for i, a := range agents {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			reports[i], errs[i] = r.Run(ctx, a)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("agent %s: %w", a.Name(), submitErr)
		}
	}
	wg.Wait()

	return reports, errors.Join(errs...)
}
