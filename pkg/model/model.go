// Package model defines the immutable per-day entities the optimizer core
// operates on: caregivers, clients, sessions, travel edges and the
// assignment edges produced by a solve.
package model

import "strings"

// Mode is a caregiver transport mode.
type Mode int

const (
	// ModeDriving is car transport.
	ModeDriving Mode = iota
	// ModeBicycling is bicycle transport.
	ModeBicycling
)

func (m Mode) String() string {
	if m == ModeBicycling {
		return "bicycling"
	}
	return "driving"
}

// TransportPolicy selects how HasCar is derived for a caregiver, per the
// `transport` configuration option.
type TransportPolicy int

const (
	// TransportDriving forces every caregiver to be treated as car-licensed.
	TransportDriving TransportPolicy = iota
	// TransportLicense honors each caregiver's own license flag.
	TransportLicense
)

// ServiceCommute is the synthetic service tag attached to sentinel sessions.
// It is implicitly part of every caregiver's competence set.
const ServiceCommute = "COMMUTE"

// administrativeTags are service tags filtered out of CASES before indexing;
// sessions carrying one of these never reach the optimizer.
var administrativeTags = map[string]struct{}{
	"ADMINISTRATION":      {},
	"VISITE MEDICALE":     {},
	"FORMATION":           {},
	"COORDINATION":        {},
	"HOMMES TOUTES MAINS": {},
}

// IsAdministrativeTag reports whether a service tag is excluded upstream of
// the optimizer core.
func IsAdministrativeTag(tag string) bool {
	_, ok := administrativeTags[strings.ToUpper(strings.TrimSpace(tag))]
	return ok
}

// CanonicalizeServiceTag applies the one known tag alias: "ACCOMPAGNEMENTS
// COURSES PA" collapses onto "ACCOMPAGNEMENTS COURSES" before competence
// comparison.
func CanonicalizeServiceTag(tag string) string {
	t := strings.ToUpper(strings.TrimSpace(tag))
	if t == "ACCOMPAGNEMENTS COURSES PA" {
		return "ACCOMPAGNEMENTS COURSES"
	}
	return t
}

// LocationID identifies a client location or a caregiver's home. The two id
// spaces are disjoint by construction (Caregiver.id vs Client.id).
type LocationID string

// Caregiver is a home-care worker available on some subset of days.
type Caregiver struct {
	ID              LocationID
	HomeLat         float64
	HomeLon         float64
	HasVehicle      bool
	HasLicense      bool
	Competence      map[string]struct{}
	UnavailableDays map[int]struct{} // day-of-month, 1..31
}

// HasCar resolves the caregiver's transport capability under the active
// transport policy (spec §6 `transport` option).
func (c Caregiver) HasCar(policy TransportPolicy) bool {
	if policy == TransportDriving {
		return true
	}
	return c.HasLicense
}

// IsCompetent reports whether the caregiver may perform the given (already
// canonicalized) service tag. COMMUTE is implicitly always allowed.
func (c Caregiver) IsCompetent(tag string) bool {
	if tag == ServiceCommute {
		return true
	}
	_, ok := c.Competence[tag]
	return ok
}

// Unavailable reports whether the caregiver is off on the given
// day-of-month.
func (c Caregiver) Unavailable(dayOfMonth int) bool {
	_, ok := c.UnavailableDays[dayOfMonth]
	return ok
}

// Client is a home-care recipient at a fixed location.
type Client struct {
	ID  LocationID
	Lat float64
	Lon float64
}

// SessionIndex is a session's position within a day's CASES ordering; index
// order is the deterministic iteration order the Instance Builder and Model
// Assembler rely on for reproducible model construction.
type SessionIndex int

// Session is a single scheduled service, or a caregiver sentinel, on one
// day.
type Session struct {
	Idx          SessionIndex
	ClientID     LocationID // a Caregiver.ID for sentinel sessions
	CaregiverID  LocationID // owning caregiver id for sentinel sessions, "" otherwise
	DayOfMonth   int
	StartMinute  int // 0..1439
	Duration     int // minutes; 0 for sentinels
	ServiceTag   string
	IsSentinel   bool
	IsMorning    bool // only meaningful when IsSentinel
}

// EndMinute is StartMinute+Duration.
func (s Session) EndMinute() int { return s.StartMinute + s.Duration }

// CanonicalTag returns the session's service tag after alias
// canonicalization.
func (s Session) CanonicalTag() string { return CanonicalizeServiceTag(s.ServiceTag) }

// MorningSentinelMinute and EveningSentinelMinute anchor each caregiver's
// daily chain (spec §4.2 sentinel injection).
const (
	MorningSentinelMinute = 5 * 60
	EveningSentinelMinute = 22 * 60
)

// NewSentinelPair builds the morning/evening sentinel sessions for a
// caregiver on a given day. idx assignment is the caller's responsibility
// (deterministic CASES ordering).
func NewSentinelPair(caregiver LocationID, dayOfMonth int) (morning, evening Session) {
	morning = Session{
		ClientID:    caregiver,
		CaregiverID: caregiver,
		DayOfMonth:  dayOfMonth,
		StartMinute: MorningSentinelMinute,
		Duration:    0,
		ServiceTag:  ServiceCommute,
		IsSentinel:  true,
		IsMorning:   true,
	}
	evening = Session{
		ClientID:    caregiver,
		CaregiverID: caregiver,
		DayOfMonth:  dayOfMonth,
		StartMinute: EveningSentinelMinute,
		Duration:    0,
		ServiceTag:  ServiceCommute,
		IsSentinel:  true,
		IsMorning:   false,
	}
	return morning, evening
}

// TravelEdge is one (source, destination, mode) travel-time entry.
type TravelEdge struct {
	Src     LocationID
	Dst     LocationID
	Mode    Mode
	Minutes int
	Meters  int
}

// AssignmentEdge is a selected (session1, session2, caregiver) triple in a
// solved day's chain graph, with Session1 < Session2.
type AssignmentEdge struct {
	Session1        SessionIndex
	Session2        SessionIndex
	Caregiver       LocationID
	PredecessorIdx  SessionIndex // the resolved chain predecessor among Session1/Session2
	CommuteMinutes  int
	CommuteMeters   int
	ShortGap        bool
}
