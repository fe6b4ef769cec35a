// Package assembler implements the Model Assembler (spec.md §4.3): it
// declares the decision variables, objective, and linear/flow-conservation
// constraints, applies the big-M non-overlap reformulation, and hands the
// result to the Solver Driver as a pure 0/1 ILP (internal/fd.Model).
package assembler

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/internal/fd"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

// BigM is the constant of spec.md §9: strictly larger than any reachable
// temporal quantity, so that (1-x)*BigM deactivates a precedence
// inequality when x=0. It is retained here for the inequalities' literal
// documented form; because ST/DUR are fixed parameters (not decision
// variables, see SPEC_FULL.md's Open-Question resolution), both
// inequalities of a candidate triple are evaluated once at assembly time
// rather than left for the solver to reason about.
const BigM = 1000 * 1440

// Config mirrors the spec.md §6 options the Model Assembler itself
// consults.
type Config struct {
	Transport       model.TransportPolicy
	CarbonReduction bool
}

// shortGapThresholdMinutes is the spec.md §9 "short idle gap" cutoff.
const shortGapThresholdMinutes = 30

// shortGapWeight is the objective's per-gap penalty, in minute-equivalents
// (spec.md §4.3: "one short gap is equivalent to five minutes of commute").
const shortGapWeight = 5

// edgeInfo is the resolved, direction-aware metadata for one candidate
// triple, computed by evaluating both big-M precedence inequalities once.
type edgeInfo struct {
	triple         instance.Triple
	predecessor    model.SessionIndex
	successor      model.SessionIndex
	commuteMinutes int
	commuteMeters  int
	shortGap       bool
}

// Assembled is the Model Assembler's output: the ILP model plus enough
// bookkeeping for the Solver Driver to turn a solution back into
// AssignmentEdges.
type Assembled struct {
	Model *fd.Model
	// Edges is indexed by fd.VarID: Edges[v] is the resolved edge the
	// variable at id v selects.
	Edges []edgeInfo
}

// Edge exposes one assembled candidate edge's resolved metadata to callers
// outside the package (the Solver Driver).
type Edge struct {
	Triple         instance.Triple
	Predecessor    model.SessionIndex
	Successor      model.SessionIndex
	CommuteMinutes int
	CommuteMeters  int
	ShortGap       bool
}

// EdgeFor returns the resolved edge metadata for variable v.
func (a *Assembled) EdgeFor(v fd.VarID) Edge {
	e := a.Edges[v]
	return Edge{
		Triple:         e.triple,
		Predecessor:    e.predecessor,
		Successor:      e.successor,
		CommuteMinutes: e.commuteMinutes,
		CommuteMeters:  e.commuteMeters,
		ShortGap:       e.shortGap,
	}
}

// Assemble builds the ILP model for one day's Instance.
func Assemble(in *instance.Instance, oracle *travel.Oracle, caregivers map[model.LocationID]model.Caregiver, cfg Config, logger *zap.Logger) *Assembled {
	if logger == nil {
		logger = zap.NewNop()
	}

	mdl := fd.NewModel()
	out := &Assembled{Model: mdl}

	// outVarsByKey/inVarsByKey group resolved edges per caregiver per session so
	// the flow/degree constraints (§4.3 items 1-5) can be built without
	// re-scanning the full triple list per session.
	type key struct {
		session   model.SessionIndex
		caregiver model.LocationID
	}
	outVarsByKey := make(map[key][]fd.VarID) // session is the resolved predecessor
	inVarsByKey := make(map[key][]fd.VarID)  // session is the resolved successor
	outAll := make(map[model.SessionIndex][]fd.VarID)
	inAll := make(map[model.SessionIndex][]fd.VarID)

	dropped := 0
	for _, t := range in.Disjunctions {
		w, ok := caregivers[t.Caregiver]
		if !ok {
			continue
		}
		s1, s2 := in.Session(t.Session1), in.Session(t.Session2)
		info, feasible := resolveBigM(s1, s2, w, oracle, cfg)
		if !feasible {
			dropped++
			continue
		}

		name := fmt.Sprintf("x[%d,%d,%s]", t.Session1, t.Session2, t.Caregiver)
		v := mdl.AddVar(name)
		out.Edges = append(out.Edges, edgeInfo{
			triple:         t,
			predecessor:    info.predecessor,
			successor:      info.successor,
			commuteMinutes: info.commuteMinutes,
			commuteMeters:  info.commuteMeters,
			shortGap:       info.shortGap,
		})

		coeff := info.commuteMinutes * 1000
		if info.shortGap {
			coeff += shortGapWeight * 1000
		}
		if cfg.CarbonReduction {
			coeff += info.commuteMeters
		}
		mdl.SetObjectiveCoeff(v, coeff)

		ok1 := key{info.predecessor, t.Caregiver}
		ok2 := key{info.successor, t.Caregiver}
		outVarsByKey[ok1] = append(outVarsByKey[ok1], v.ID())
		inVarsByKey[ok2] = append(inVarsByKey[ok2], v.ID())
		outAll[info.predecessor] = append(outAll[info.predecessor], v.ID())
		inAll[info.successor] = append(inAll[info.successor], v.ID())
	}
	if dropped > 0 {
		logger.Debug("dropped triples with no feasible non-overlap direction", zap.Int("count", dropped))
	}

	// §4.3 constraints 1-3: per-session out-degree <=1, in-degree <=1,
	// covered >=1.
	for _, c := range in.Cases {
		if len(outAll[c.Idx]) > 0 {
			mdl.AddConstraint(fd.AtMostOne(outAll[c.Idx], fmt.Sprintf("out-degree[%d]", c.Idx)))
		}
		if len(inAll[c.Idx]) > 0 {
			mdl.AddConstraint(fd.AtMostOne(inAll[c.Idx], fmt.Sprintf("in-degree[%d]", c.Idx)))
		}
		covered := append(append([]fd.VarID{}, outAll[c.Idx]...), inAll[c.Idx]...)
		if len(covered) > 0 {
			mdl.AddConstraint(fd.AtLeastOne(covered, fmt.Sprintf("covered[%d]", c.Idx)))
		}
	}

	// §4.3 constraint 4 (single caregiver) and 5 (flow balance), built per
	// (session, caregiver) pair in deterministic idx/id order.
	wIDs := make([]model.LocationID, 0, len(caregivers))
	for id := range caregivers {
		wIDs = append(wIDs, id)
	}
	sort.Slice(wIDs, func(i, j int) bool { return wIDs[i] < wIDs[j] })

	for _, c := range in.Cases {
		for _, w0 := range wIDs {
			// Constraint 4: out-edges from c under w0, plus in-edges to c
			// under any caregiver other than w0, sum to at most 1.
			var single []fd.VarID
			single = append(single, outVarsByKey[key{c.Idx, w0}]...)
			for _, v := range inAll[c.Idx] {
				if !containsVar(inVarsByKey[key{c.Idx, w0}], v) {
					single = append(single, v)
				}
			}
			if len(single) > 0 {
				mdl.AddConstraint(fd.AtMostOne(single, fmt.Sprintf("single-caregiver[%d,%s]", c.Idx, w0)))
			}

			// Constraint 5: flow balance, sentinels contributing the +1/-1
			// source/sink terms per spec.md §4.3.
			rhs := 0
			if c.IsSentinel && c.CaregiverID == w0 {
				if c.IsMorning {
					rhs = 1
				} else {
					rhs = -1
				}
			}
			var terms []fd.Term
			for _, v := range outVarsByKey[key{c.Idx, w0}] {
				terms = append(terms, fd.Term{Var: v, Coeff: 1})
			}
			for _, v := range inVarsByKey[key{c.Idx, w0}] {
				terms = append(terms, fd.Term{Var: v, Coeff: -1})
			}
			if len(terms) > 0 || rhs != 0 {
				mdl.AddConstraint(fd.NewLinear(terms, fd.EQ, rhs, fmt.Sprintf("flow-balance[%d,%s]", c.Idx, w0)))
			}
		}
	}

	return out
}

func containsVar(vs []fd.VarID, v fd.VarID) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}

type resolved struct {
	predecessor    model.SessionIndex
	successor      model.SessionIndex
	commuteMinutes int
	commuteMeters  int
	shortGap       bool
}

// resolveBigM evaluates both directions of the §4.3 disjunctive non-overlap
// pair for one candidate triple. If neither direction satisfies its
// inequality, the triple is infeasible and must not become a variable
// (spec.md §9 "materialize only feasible triples"). If both do (possible
// only in degenerate zero-duration/zero-travel cases, e.g. a caregiver's
// own sentinel pair), the earlier-starting session is the predecessor.
func resolveBigM(s1, s2 model.Session, w model.Caregiver, oracle *travel.Oracle, cfg Config) (resolved, bool) {
	hasCar := w.HasCar(cfg.Transport)

	minAB, metAB := oracle.LookupForCaregiver(s1.ClientID, s2.ClientID, hasCar)
	feasibleAB := s1.EndMinute()+minAB <= s2.StartMinute

	minBA, metBA := oracle.LookupForCaregiver(s2.ClientID, s1.ClientID, hasCar)
	feasibleBA := s2.EndMinute()+minBA <= s1.StartMinute

	switch {
	case feasibleAB && (!feasibleBA || s1.StartMinute <= s2.StartMinute):
		return resolved{
			predecessor:    s1.Idx,
			successor:      s2.Idx,
			commuteMinutes: minAB,
			commuteMeters:  metAB,
			shortGap:       s2.StartMinute-(s1.EndMinute()+minAB) < shortGapThresholdMinutes,
		}, true
	case feasibleBA:
		return resolved{
			predecessor:    s2.Idx,
			successor:      s1.Idx,
			commuteMinutes: minBA,
			commuteMeters:  metBA,
			shortGap:       s1.StartMinute-(s2.EndMinute()+minBA) < shortGapThresholdMinutes,
		}, true
	default:
		return resolved{}, false
	}
}
