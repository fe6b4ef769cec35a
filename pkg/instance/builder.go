// Package instance implements the Instance Builder (spec.md §4.2): it
// reduces one day's raw sessions and caregiver roster into the five index
// sets/candidate lists the Model Assembler consumes.
package instance

import (
	"sort"

	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/pkg/model"
)

// Config holds the subset of spec.md §6 configuration options the Instance
// Builder itself consults.
type Config struct {
	IncludeAvailability bool
	FilterForCompetence bool
}

// Task is a (session, caregiver) pair: "caregiver may serve session".
type Task struct {
	Session   model.SessionIndex
	Caregiver model.LocationID
}

// Pair is a (session1, session2) combination with Session1 < Session2.
type Pair struct {
	Session1 model.SessionIndex
	Session2 model.SessionIndex
}

// Triple is a (session1, session2, caregiver) disjunction candidate, with
// Session1 < Session2.
type Triple struct {
	Session1  model.SessionIndex
	Session2  model.SessionIndex
	Caregiver model.LocationID
}

// Instance is the Model Assembler's input: the five artifacts of spec.md
// §4.2.
type Instance struct {
	Cases            []model.Session // idx-ordered, administrative tags already filtered, sentinels injected
	Caregivers       []model.Caregiver
	Disjunctions     []Triple
	Tasks            []Task
	CaseCombinations []Pair

	// sessionByIdx supports O(1) lookup from SessionIndex back to Session.
	sessionByIdx map[model.SessionIndex]model.Session
}

// Session returns the session at idx.
func (in *Instance) Session(idx model.SessionIndex) model.Session { return in.sessionByIdx[idx] }

// Build runs the Instance Builder for one day.
//
// sessions are the day's raw, already-dated sessions (administrative tags
// not yet filtered, sentinels not yet injected); caregivers is the full
// roster (availability not yet applied). dayOfMonth selects the
// availability check.
func Build(sessions []model.Session, caregivers []model.Caregiver, dayOfMonth int, cfg Config, logger *zap.Logger) *Instance {
	if logger == nil {
		logger = zap.NewNop()
	}

	// §4.2 CAREGIVERS: apply availability filter first, since sentinel
	// injection and all feasibility filters key off the resulting roster.
	activeCaregivers := make([]model.Caregiver, 0, len(caregivers))
	for _, c := range caregivers {
		if cfg.IncludeAvailability && c.Unavailable(dayOfMonth) {
			continue
		}
		activeCaregivers = append(activeCaregivers, c)
	}
	sort.Slice(activeCaregivers, func(i, j int) bool { return activeCaregivers[i].ID < activeCaregivers[j].ID })

	// Filter administrative tags, then inject one sentinel pair per active
	// caregiver (spec §4.2 sentinel injection).
	filtered := make([]model.Session, 0, len(sessions))
	dropped := 0
	for _, s := range sessions {
		if model.IsAdministrativeTag(s.ServiceTag) {
			dropped++
			continue
		}
		filtered = append(filtered, s)
	}
	if dropped > 0 {
		logger.Debug("filtered administrative sessions", zap.Int("count", dropped))
	}

	for _, c := range activeCaregivers {
		morning, evening := model.NewSentinelPair(c.ID, dayOfMonth)
		filtered = append(filtered, morning, evening)
	}

	// Deterministic CASES ordering: by start minute, then sentinel-after-real
	// at an equal start minute, then client id — so reruns on the same
	// inputs produce byte-identical models (spec §9 "deterministic
	// enumeration").
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		if a.IsSentinel != b.IsSentinel {
			return !a.IsSentinel
		}
		return a.ClientID < b.ClientID
	})
	for i := range filtered {
		filtered[i].Idx = model.SessionIndex(i)
	}

	sessionByIdx := make(map[model.SessionIndex]model.Session, len(filtered))
	for _, s := range filtered {
		sessionByIdx[s.Idx] = s
	}

	in := &Instance{
		Cases:        filtered,
		Caregivers:   activeCaregivers,
		sessionByIdx: sessionByIdx,
	}

	// §4.2 TASKS and DISJUNCTIONS: deterministic iteration over CASES (idx
	// order) and CAREGIVERS (id order), per spec §5 and §9.
	for _, c := range filtered {
		for _, w := range activeCaregivers {
			if !taskFeasible(c, w, cfg) {
				continue
			}
			in.Tasks = append(in.Tasks, Task{Session: c.Idx, Caregiver: w.ID})
		}
	}

	combos := make(map[Pair]struct{})
	for i, c1 := range filtered {
		for _, c2 := range filtered[i+1:] {
			for _, w := range activeCaregivers {
				if !tripleFeasible(c1, c2, w, cfg) {
					continue
				}
				in.Disjunctions = append(in.Disjunctions, Triple{Session1: c1.Idx, Session2: c2.Idx, Caregiver: w.ID})
				combos[Pair{c1.Idx, c2.Idx}] = struct{}{}
			}
		}
	}
	for p := range combos {
		in.CaseCombinations = append(in.CaseCombinations, p)
	}
	sort.Slice(in.CaseCombinations, func(i, j int) bool {
		a, b := in.CaseCombinations[i], in.CaseCombinations[j]
		if a.Session1 != b.Session1 {
			return a.Session1 < b.Session1
		}
		return a.Session2 < b.Session2
	})

	logger.Debug("instance built",
		zap.Int("cases", len(in.Cases)),
		zap.Int("caregivers", len(in.Caregivers)),
		zap.Int("tasks", len(in.Tasks)),
		zap.Int("disjunctions", len(in.Disjunctions)),
	)
	return in
}

// sentinelOwner returns the owning caregiver id if s is a sentinel, and ok.
func sentinelOwner(s model.Session) (model.LocationID, bool) {
	if s.IsSentinel {
		return s.CaregiverID, true
	}
	return "", false
}

// competent reports whether w may perform a (canonicalized) service tag,
// honoring cfg.FilterForCompetence: when the filter is disabled every
// session is trivially competent-eligible.
func competent(tag string, w model.Caregiver, cfg Config) bool {
	if !cfg.FilterForCompetence {
		return true
	}
	return w.IsCompetent(model.CanonicalizeServiceTag(tag))
}

// taskFeasible applies the single-session variant of the §4.2 feasibility
// filters to build TASKS.
func taskFeasible(c model.Session, w model.Caregiver, cfg Config) bool {
	if owner, ok := sentinelOwner(c); ok && owner != w.ID {
		return false
	}
	return competent(c.ServiceTag, w, cfg)
}

// tripleFeasible applies the §4.2 feasibility filters for DISJUNCTIONS.
func tripleFeasible(c1, c2 model.Session, w model.Caregiver, cfg Config) bool {
	owner1, sentinel1 := sentinelOwner(c1)
	owner2, sentinel2 := sentinelOwner(c2)

	switch {
	case sentinel1 && sentinel2:
		if owner1 != w.ID || owner2 != w.ID {
			return false
		}
	case sentinel1:
		if owner1 != w.ID {
			return false
		}
	case sentinel2:
		if owner2 != w.ID {
			return false
		}
	}

	if !competent(c1.ServiceTag, w, cfg) || !competent(c2.ServiceTag, w, cfg) {
		return false
	}
	return true
}
