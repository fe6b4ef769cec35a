// Package travel implements the Travel Oracle: a pure, immutable lookup
// service over pairwise travel times/distances between clients and
// caregiver homes, keyed by transport mode.
package travel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stlbnmaria/careplan/pkg/model"
)

// edgeKey is the internal lookup key for one directed (src, dst, mode)
// travel entry.
type edgeKey struct {
	src  model.LocationID
	dst  model.LocationID
	mode model.Mode
}

// Oracle answers travel-time/distance lookups for a run; one Oracle may be
// shared by every day of a batch. It is built once and is safe for
// concurrent reads thereafter (spec §5 shared resource policy).
type Oracle struct {
	edges  map[edgeKey]model.TravelEdge
	logger *zap.Logger
}

// New builds an Oracle from the Cartesian-product travel tables (spec
// §4.1 Construction). Only the supplied edges are stored; Lookup resolves
// self-loops (src == dst) to (0, 0) regardless of what edges supplies, and
// WithSelfEdges registers explicit caregiver-to-own-home entries.
func New(edges []model.TravelEdge, logger *zap.Logger) *Oracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Oracle{edges: make(map[edgeKey]model.TravelEdge, len(edges)), logger: logger}
	for _, e := range edges {
		o.edges[edgeKey{e.Src, e.Dst, e.Mode}] = e
	}
	return o
}

// WithSelfEdges registers zero-cost self edges for the given ids across both
// modes, covering caregiver-home-to-own-self sentinel traversal.
func (o *Oracle) WithSelfEdges(ids []model.LocationID) *Oracle {
	for _, id := range ids {
		for _, m := range []model.Mode{model.ModeDriving, model.ModeBicycling} {
			k := edgeKey{id, id, m}
			if _, ok := o.edges[k]; !ok {
				o.edges[k] = model.TravelEdge{Src: id, Dst: id, Mode: m}
			}
		}
	}
	return o
}

// Lookup returns travel minutes and meters from src to dst under mode.
// Self-loops always return (0, 0). A missing entry is non-fatal: it is
// logged as a diagnostic and substituted with (0, 0) per spec §4.1/§7.
func (o *Oracle) Lookup(src, dst model.LocationID, mode model.Mode) (minutes, meters int) {
	if src == dst {
		return 0, 0
	}
	if e, ok := o.edges[edgeKey{src, dst, mode}]; ok {
		return e.Minutes, e.Meters
	}
	o.logger.Warn("missing travel edge, substituting zero",
		zap.String("src", string(src)),
		zap.String("dst", string(dst)),
		zap.String("mode", mode.String()),
	)
	return 0, 0
}

// LookupForCaregiver resolves travel using the caregiver's active transport
// mode (spec §4.3 mode selection rule): drive minutes/meters if HasCar,
// otherwise bicycle minutes and zero meters.
func (o *Oracle) LookupForCaregiver(src, dst model.LocationID, hasCar bool) (minutes, meters int) {
	if hasCar {
		return o.Lookup(src, dst, model.ModeDriving)
	}
	minutes, _ = o.Lookup(src, dst, model.ModeBicycling)
	return minutes, 0
}

// String renders a short human-readable summary, useful in diagnostics.
func (o *Oracle) String() string {
	return fmt.Sprintf("travel.Oracle{edges=%d}", len(o.edges))
}
