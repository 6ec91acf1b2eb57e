// Package runner orchestrates the simulation: for every condition of the
// design grid it executes independent replications of the
// sample -> discretize -> estimate chain over a worker pool.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adalundhe/alphasim/core/design"
	"github.com/adalundhe/alphasim/core/discretize"
	simerr "github.com/adalundhe/alphasim/core/errors"
	"github.com/adalundhe/alphasim/core/mvnorm"
	"github.com/adalundhe/alphasim/core/reliability"
)

// DefaultReplications is the reference replication count per condition.
const DefaultReplications = 1000

// Config controls a simulation run.
type Config struct {
	// Replications per condition. Defaults to DefaultReplications.
	Replications int

	// Workers is the size of the condition worker pool.
	// Defaults to GOMAXPROCS.
	Workers int

	// BaseSeed parameterizes the per-replication random streams. Two runs
	// with the same BaseSeed produce bit-identical estimates regardless of
	// worker count or scheduling.
	BaseSeed uint64

	// CutPoints for discretization. Defaults to discretize.DefaultCutPoints.
	CutPoints []float64
}

// Runner executes the full grid. Each replication draws from its own
// deterministically seeded random stream, so no random state is shared
// between replications or conditions.
type Runner struct {
	grid    *design.Grid
	cfg     Config
	scheme  *discretize.Scheme
	factors *mvnorm.FactorCache
	logger  *slog.Logger
	runID   uuid.UUID
}

// New validates the configuration and returns a Runner for the grid.
func New(grid *design.Grid, cfg Config, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if grid == nil {
		return nil, &simerr.InvalidParameterError{Param: "grid", Value: nil, Reason: "grid is required"}
	}
	if cfg.Replications == 0 {
		cfg.Replications = DefaultReplications
	}
	if cfg.Replications < 1 {
		return nil, &simerr.InvalidParameterError{Param: "replications", Value: cfg.Replications, Reason: "must be at least 1"}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.CutPoints == nil {
		cfg.CutPoints = discretize.DefaultCutPoints
	}
	scheme, err := discretize.NewScheme(cfg.CutPoints)
	if err != nil {
		return nil, err
	}
	factors, err := mvnorm.NewFactorCache(0)
	if err != nil {
		return nil, err
	}

	return &Runner{
		grid:    grid,
		cfg:     cfg,
		scheme:  scheme,
		factors: factors,
		logger:  logger,
		runID:   uuid.New(),
	}, nil
}

// RunID identifies this runner's output in logs and diagnostics.
func (r *Runner) RunID() string {
	return r.runID.String()
}

// Replications returns the configured replication count per condition.
func (r *Runner) Replications() int {
	return r.cfg.Replications
}

// Run executes every (condition, replication) pair and feeds the resulting
// estimates to sink. Conditions are distributed over the worker pool;
// completed condition batches are merged on a single collector goroutine,
// so sink sees no concurrent calls. The estimate stream is deterministic in
// content for a fixed BaseSeed, though batch arrival order may vary.
//
// A degenerate replication is recorded against its (condition, replication)
// pair and the run continues. Setup failures (invalid parameters, a
// covariance that will not factorize) abort the whole run.
func (r *Runner) Run(ctx context.Context, sink Sink) error {
	start := time.Now()
	r.logger.Info("simulation run starting",
		"run_id", r.runID.String(),
		"conditions", r.grid.Len(),
		"replications", r.cfg.Replications,
		"workers", r.cfg.Workers,
		"seed", r.cfg.BaseSeed,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	condCh := make(chan int)
	batchCh := make(chan []Estimate, r.cfg.Workers)
	errCh := make(chan error, r.cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range condCh {
				batch, err := r.runCondition(ctx, idx)
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					cancel()
					return
				}
				select {
				case batchCh <- batch:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(condCh)
		for idx := 0; idx < r.grid.Len(); idx++ {
			select {
			case condCh <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(batchCh)
	}()

	var merged, delivered int
	for batch := range batchCh {
		for _, est := range batch {
			sink.Add(est)
		}
		merged++
		delivered += len(batch)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("run %s aborted: %w", r.runID.String(), err)
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.logger.Info("simulation run complete",
		"run_id", r.runID.String(),
		"conditions", merged,
		"estimates", delivered,
		"elapsed", time.Since(start),
	)
	return nil
}

// runCondition executes all replications for one condition. The sample
// matrix of each replication goes out of scope as soon as its alpha is
// computed; only the scalar estimates accumulate.
func (r *Runner) runCondition(ctx context.Context, idx int) ([]Estimate, error) {
	cond := r.grid.ConditionAt(idx)

	sampler, err := r.factors.Get(cond.ItemCount, cond.Correlation)
	if err != nil {
		return nil, fmt.Errorf("condition %s: %w", cond.Key(), err)
	}

	out := make([]Estimate, 0, r.cfg.Replications)
	for rep := 1; rep <= r.cfg.Replications; rep++ {
		if rep%64 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		rng := rand.New(rand.NewPCG(r.cfg.BaseSeed, streamID(idx, rep)))
		sample := sampler.Sample(rng, cond.SampleSize)
		r.scheme.InPlace(sample)

		alpha, err := reliability.CronbachAlpha(sample)
		if err != nil && !simerr.Classify(err).Recoverable() {
			return nil, fmt.Errorf("condition %s replication %d: %w", cond.Key(), rep, err)
		}
		if err != nil {
			r.logger.Debug("replication failed",
				"run_id", r.runID.String(),
				"condition", cond.Key(),
				"replication", rep,
				"kind", simerr.Classify(err).String(),
			)
		}
		out = append(out, Estimate{
			Condition:   cond,
			Replication: rep,
			Alpha:       alpha,
			Err:         err,
		})
	}
	return out, nil
}

// streamID derives a unique PCG stream for a (condition, replication) pair.
// Condition index and replication id never approach 2^32, so the packing
// cannot collide.
func streamID(condIdx, rep int) uint64 {
	return uint64(condIdx)<<32 | uint64(rep)
}
