// Package batch runs the optimizer core across many independent days
// concurrently (spec.md §5: "distinct days are embarrassingly parallel").
// Fan-out is built on golang.org/x/sync/errgroup, grounded on the
// worker-pool idiom in
// theRebelliousNerd-codenerd/internal/campaign/intelligence_gatherer.go,
// rather than the teacher's internal parallel search machinery, since day
// parallelism and in-model search parallelism are different concerns (see
// DESIGN.md).
package batch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stlbnmaria/careplan/pkg/assembler"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
	"github.com/stlbnmaria/careplan/pkg/solver"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

// DaySpec is one day's raw input to the batch run.
type DaySpec struct {
	DayOfMonth int
	Sessions   []model.Session
}

// Config bundles the spec.md §6 configuration options that apply across an
// entire batch run.
type Config struct {
	InstanceConfig  instance.Config
	AssemblerConfig assembler.Config
	TimeLimit       time.Duration
	Workers         int
}

// DayResult is one day's outcome. Err is set only when the Solver Driver
// returns an error (an assembled model that fails validation); solver-level
// non-success is instead reflected in Result.Status, and the batch always
// continues past either.
type DayResult struct {
	DayOfMonth int
	Result     solver.Result
	Err        error
}

// Run solves every day in days, isolating per-day failures (spec.md §7:
// "a multi-day batch continues after a day's failure").
func Run(ctx context.Context, days []DaySpec, caregivers []model.Caregiver, oracle *travel.Oracle, cfg Config, logger *zap.Logger) []DayResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]DayResult, len(days))
	g, gctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}

	for i, day := range days {
		i, day := i, day
		g.Go(func() error {
			dayLogger := logger.With(zap.Int("day", day.DayOfMonth))

			in := instance.Build(day.Sessions, caregivers, day.DayOfMonth, cfg.InstanceConfig, dayLogger)
			activeCaregivers := make(map[model.LocationID]model.Caregiver, len(in.Caregivers))
			for _, c := range in.Caregivers {
				activeCaregivers[c.ID] = c
			}
			asm := assembler.Assemble(in, oracle, activeCaregivers, cfg.AssemblerConfig, dayLogger)
			res, err := solver.Solve(gctx, in, asm, cfg.TimeLimit, dayLogger)
			if err != nil {
				dayLogger.Error("day failed, skipping", zap.Error(err))
				results[i] = DayResult{DayOfMonth: day.DayOfMonth, Err: err}
				return nil
			}
			if res.Status == solver.StatusInfeasible {
				dayLogger.Warn("day infeasible")
			}
			results[i] = DayResult{DayOfMonth: day.DayOfMonth, Result: res}
			return nil
		})
	}
	// g.Wait() only ever returns an error if a Go func returns one; every
	// per-day failure above is captured in DayResult instead, so batch
	// failures never cancel siblings.
	_ = g.Wait()
	return results
}
