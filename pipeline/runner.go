// Package pipeline applies YAML processing recipes to correlation matrices.
//
// A recipe is loaded with Load or Parse, compiled by NewRunner and applied
// with Runner.Run to one matrix or with Runner.Merge to several matrices of
// the same station pair.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-corrmat/corrmat"
	"github.com/cwbudde/algo-corrmat/internal/logging"
	"github.com/cwbudde/algo-corrmat/timeconv"
)

// StepError reports the recipe step that failed.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline: step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger replaces the logger built from the recipe's logging settings.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithConverter replaces the layout converter built from the recipe's
// TimeLayout.
func WithConverter(c timeconv.Converter) Option {
	return func(r *Runner) {
		if c != nil {
			r.conv = c
		}
	}
}

// Runner applies a compiled recipe. It holds no per-run state and may be
// shared between goroutines.
type Runner struct {
	recipe Recipe
	stages []stage
	logger *slog.Logger
	conv   timeconv.Converter
}

// NewRunner compiles recipe. Timestamps in the recipe are converted once,
// here, so a Runner never fails on recipe syntax.
func NewRunner(recipe *Recipe, opts ...Option) (*Runner, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: nil recipe", ErrInvalidRecipe)
	}

	r := &Runner{recipe: *recipe}
	for _, o := range opts {
		o(r)
	}
	if r.logger == nil {
		r.logger = logging.New(recipe.Logging.Level, recipe.Logging.JSON, os.Stderr)
	}
	if r.conv == nil {
		r.conv = timeconv.NewLayout(recipe.TimeLayout)
	}

	stages, err := r.recipe.compile(r.conv)
	if err != nil {
		return nil, err
	}
	r.stages = stages

	return r, nil
}

// Steps returns the recipe steps in execution order.
func (r *Runner) Steps() []Step {
	out := make([]Step, len(r.stages))
	for i, st := range r.stages {
		out[i] = st.step
	}
	return out
}

// Run applies every step to m in order and stops at the first failure.
// m itself is never modified. Log records of one call share a run id.
func (r *Runner) Run(m *corrmat.Matrix) (*corrmat.Matrix, error) {
	return r.run(m, r.runLogger())
}

func (r *Runner) runLogger() *slog.Logger {
	return r.logger.With(slog.String("run", uuid.NewString()))
}

func (r *Runner) run(m *corrmat.Matrix, logger *slog.Logger) (*corrmat.Matrix, error) {
	cur := m
	for _, st := range r.stages {
		began := time.Now()

		next, err := st.apply(cur)
		if err != nil {
			logger.Error("step failed",
				slog.Int("step", st.index),
				slog.String("op", st.step.Op),
				slog.Any("error", err))
			return nil, &StepError{Index: st.index, Op: st.step.Op, Err: err}
		}

		logger.Debug("step done",
			slog.Int("step", st.index),
			slog.String("op", st.step.Op),
			slog.Int("traces", next.NumTraces()),
			slog.Int("npts", next.Stats.NPTS),
			slog.Duration("took", time.Since(began)))
		cur = next
	}

	if cur == m {
		return m.Clone(), nil
	}
	return cur, nil
}

// Merge combines ms with corrmat.Merge, using the recipe's identifier
// overrides, and runs the steps on the result.
func (r *Runner) Merge(ms []*corrmat.Matrix) (*corrmat.Matrix, error) {
	logger := r.runLogger()

	merged, err := corrmat.Merge(ms,
		corrmat.WithLogger(logger),
		corrmat.WithSeedID(r.recipe.Merge.seedID()),
	)
	if err != nil {
		logger.Error("merge failed", slog.Int("inputs", len(ms)), slog.Any("error", err))
		return nil, fmt.Errorf("pipeline: merge: %w", err)
	}

	logger.Debug("merge done",
		slog.Int("inputs", len(ms)),
		slog.Int("traces", merged.NumTraces()),
		slog.Int("npts", merged.Stats.NPTS))

	return r.run(merged, logger)
}

// FormatTimes renders trace times with the runner's converter.
func (r *Runner) FormatTimes(m *corrmat.Matrix) []string {
	return r.conv.ToString(m.Time)
}
