// Package solver implements the Solver Driver (spec.md §4.4): it hands the
// assembled ILP to the branch-and-bound engine with a wall-clock budget,
// extracts the active assignment edges, and reconstructs each caregiver's
// ordered route for the day.
package solver

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/internal/fd"
	"github.com/stlbnmaria/careplan/pkg/assembler"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
)

// DefaultTimeLimit is the spec.md §6 default solver wall-clock budget.
const DefaultTimeLimit = 1200 * time.Second

// Status mirrors the spec.md §4.4/§7 failure-semantics taxonomy, reported
// back to callers alongside a Result.
type Status int

const (
	// StatusOptimal means the incumbent is proven optimal.
	StatusOptimal Status = iota
	// StatusFeasibleWithinBudget means the wall-clock budget elapsed with an
	// incumbent in hand; optimality is not proven.
	StatusFeasibleWithinBudget
	// StatusInfeasible means the model admits no feasible assignment.
	StatusInfeasible
	// StatusTimeoutNoIncumbent means the budget elapsed before any feasible
	// solution was found.
	StatusTimeoutNoIncumbent
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasibleWithinBudget:
		return "feasible-within-budget"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "timeout-no-incumbent"
	}
}

// Route is one caregiver's reconstructed ordered chain for the day,
// anchored at their morning and evening sentinels (SPEC_FULL.md
// "Supplemented Features": additive beyond spec.md §4.4's bare edge set).
type Route struct {
	Caregiver model.LocationID
	Sessions  []model.SessionIndex
}

// Result is the Solver Driver's output for one day.
type Result struct {
	Status              Status
	NotProvenOptimal    bool
	Edges               []model.AssignmentEdge
	Assignments         map[model.SessionIndex]model.LocationID
	Routes              []Route
	ObjectiveValue      float64
	TotalCommuteMinutes int
	ShortGapCount       int
	TotalMeters         int
}

// Solve runs the Solver Driver for one already-assembled day.
func Solve(ctx context.Context, in *instance.Instance, asm *assembler.Assembled, budget time.Duration, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if budget <= 0 {
		budget = DefaultTimeLimit
	}
	if err := asm.Model.Validate(); err != nil {
		return Result{}, fmt.Errorf("solver: invalid model: %w", err)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	s := fd.NewSolver(asm.Model)
	fdResult := s.Solve(ctx)
	logger.Info("solve finished",
		zap.String("status", fdStatusLabel(fdResult.Status)),
		zap.Duration("elapsed", time.Since(start)),
	)

	switch fdResult.Status {
	case fd.StatusInfeasible:
		return Result{Status: StatusInfeasible}, nil
	case fd.StatusTimeoutNoIncumbent:
		logger.Warn("no incumbent produced within budget")
		return Result{Status: StatusTimeoutNoIncumbent}, nil
	}

	res := Result{
		Status:           StatusOptimal,
		NotProvenOptimal: fdResult.Status == fd.StatusFeasible,
		Assignments:      make(map[model.SessionIndex]model.LocationID),
	}
	if res.NotProvenOptimal {
		res.Status = StatusFeasibleWithinBudget
	}

	predecessorOf := make(map[model.LocationID]map[model.SessionIndex]model.SessionIndex)
	for varIdx, val := range fdResult.Solution {
		if val != 1 {
			continue
		}
		e := asm.EdgeFor(fd.VarID(varIdx))

		res.Edges = append(res.Edges, model.AssignmentEdge{
			Session1:       e.Triple.Session1,
			Session2:       e.Triple.Session2,
			Caregiver:      e.Triple.Caregiver,
			PredecessorIdx: e.Predecessor,
			CommuteMinutes: e.CommuteMinutes,
			CommuteMeters:  e.CommuteMeters,
			ShortGap:       e.ShortGap,
		})

		res.Assignments[e.Triple.Session1] = e.Triple.Caregiver
		res.Assignments[e.Triple.Session2] = e.Triple.Caregiver

		res.TotalCommuteMinutes += e.CommuteMinutes
		if e.ShortGap {
			res.ShortGapCount++
		}
		res.TotalMeters += e.CommuteMeters

		if predecessorOf[e.Triple.Caregiver] == nil {
			predecessorOf[e.Triple.Caregiver] = make(map[model.SessionIndex]model.SessionIndex)
		}
		predecessorOf[e.Triple.Caregiver][e.Successor] = e.Predecessor
	}

	res.ObjectiveValue = float64(fdResult.Objective) / 1000.0
	res.Routes = reconstructRoutes(in, predecessorOf)

	return res, nil
}

func fdStatusLabel(s fd.Status) string {
	switch s {
	case fd.StatusOptimal:
		return "optimal"
	case fd.StatusFeasible:
		return "feasible"
	case fd.StatusInfeasible:
		return "infeasible"
	default:
		return "timeout-no-incumbent"
	}
}

// reconstructRoutes walks each caregiver's predecessor map backward from
// their evening sentinel to their morning sentinel, then reverses it,
// supplementing spec.md §4.4 ("the driver does NOT reconstruct total
// ordering") with the ordered chain the original optimiser's routing module
// also derives from the selected edges (see SPEC_FULL.md).
func reconstructRoutes(in *instance.Instance, predecessorOf map[model.LocationID]map[model.SessionIndex]model.SessionIndex) []Route {
	var routes []Route
	for _, w := range in.Caregivers {
		preds, ok := predecessorOf[w.ID]
		if !ok {
			continue
		}
		var evening model.SessionIndex
		found := false
		for _, c := range in.Cases {
			if c.IsSentinel && !c.IsMorning && c.CaregiverID == w.ID {
				evening = c.Idx
				found = true
				break
			}
		}
		if !found {
			continue
		}

		var chain []model.SessionIndex
		cur := evening
		seen := make(map[model.SessionIndex]bool)
		for {
			chain = append(chain, cur)
			seen[cur] = true
			prev, ok := preds[cur]
			if !ok || seen[prev] {
				break
			}
			cur = prev
		}
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
		routes = append(routes, Route{Caregiver: w.ID, Sessions: chain})
	}
	return routes
}
