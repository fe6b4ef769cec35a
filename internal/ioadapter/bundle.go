// Package ioadapter is a minimal JSON adapter for the CLI entry points. It
// is NOT the spreadsheet/CSV/Excel/Google-Maps loaders spec.md §1 puts
// deliberately out of scope (those have their own column layouts, sheet
// indices and live network probes); it exists only so `careplan` has some
// concrete way to read the spec.md §6 input contracts from disk without the
// optimizer core depending on any particular file format.
package ioadapter

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stlbnmaria/careplan/pkg/model"
)

// CaregiverRecord mirrors the spec.md §6 caregiver-roster contract.
type CaregiverRecord struct {
	ID              string   `json:"id"`
	HomeLat         float64  `json:"home_lat"`
	HomeLon         float64  `json:"home_lon"`
	HasVehicle      bool     `json:"has_vehicle"`
	HasLicense      bool     `json:"has_license"`
	Competence      []string `json:"competence"`
	UnavailableDays []int    `json:"unavailable_days"`
}

// SessionRecord mirrors the spec.md §6 session-stream contract.
type SessionRecord struct {
	Date        int    `json:"day_of_month"`
	ClientID    string `json:"client_id"`
	StartMinute int    `json:"start_minute"`
	Duration    int    `json:"duration_minutes"`
	ServiceTag  string `json:"service_tag"`
}

// TravelRecord mirrors the spec.md §6 travel-table contract (seconds on
// disk, converted to minutes on load).
type TravelRecord struct {
	Src     string `json:"src"`
	Dst     string `json:"dst"`
	Mode    string `json:"mode"`
	Seconds int    `json:"seconds"`
	Meters  int    `json:"meters"`
}

// Bundle is the full set of day-independent inputs a `careplan` invocation
// needs: roster, travel tables, and every day's sessions keyed by
// day-of-month.
type Bundle struct {
	Caregivers []CaregiverRecord         `json:"caregivers"`
	Travel     []TravelRecord            `json:"travel"`
	Sessions   map[string][]SessionRecord `json:"sessions"`
}

// LoadBundle reads and parses a JSON bundle file.
func LoadBundle(path string) (Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Bundle{}, fmt.Errorf("ioadapter: read %s: %w", path, err)
	}
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, fmt.Errorf("ioadapter: parse %s: %w", path, err)
	}
	return b, nil
}

// Caregivers converts the bundle's caregiver records to model.Caregiver.
func (b Bundle) Caregivers() []model.Caregiver {
	out := make([]model.Caregiver, 0, len(b.Caregivers))
	for _, r := range b.Caregivers {
		comp := make(map[string]struct{}, len(r.Competence))
		for _, tag := range r.Competence {
			comp[model.CanonicalizeServiceTag(tag)] = struct{}{}
		}
		unavail := make(map[int]struct{}, len(r.UnavailableDays))
		for _, d := range r.UnavailableDays {
			unavail[d] = struct{}{}
		}
		out = append(out, model.Caregiver{
			ID:              model.LocationID(r.ID),
			HomeLat:         r.HomeLat,
			HomeLon:         r.HomeLon,
			HasVehicle:      r.HasVehicle,
			HasLicense:      r.HasLicense,
			Competence:      comp,
			UnavailableDays: unavail,
		})
	}
	return out
}

// TravelEdges converts the bundle's travel records to model.TravelEdge,
// mirroring both directions only if the bundle itself lists them (the
// contract does not assume symmetry).
func (b Bundle) TravelEdges() []model.TravelEdge {
	out := make([]model.TravelEdge, 0, len(b.Travel))
	for _, r := range b.Travel {
		mode := model.ModeDriving
		if r.Mode == "bicycling" {
			mode = model.ModeBicycling
		}
		out = append(out, model.TravelEdge{
			Src:     model.LocationID(r.Src),
			Dst:     model.LocationID(r.Dst),
			Mode:    mode,
			Minutes: r.Seconds / 60,
			Meters:  r.Meters,
		})
	}
	return out
}

// SessionsForDay converts one day-of-month's session records to
// model.Session (Idx left zero; the Instance Builder assigns it).
func (b Bundle) SessionsForDay(dayKey string, dayOfMonth int) []model.Session {
	recs := b.Sessions[dayKey]
	out := make([]model.Session, 0, len(recs))
	for _, r := range recs {
		out = append(out, model.Session{
			ClientID:    model.LocationID(r.ClientID),
			DayOfMonth:  dayOfMonth,
			StartMinute: r.StartMinute,
			Duration:    r.Duration,
			ServiceTag:  r.ServiceTag,
		})
	}
	return out
}
