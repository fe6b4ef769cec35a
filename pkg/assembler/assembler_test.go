package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

func mustSession(idx model.SessionIndex, client string, start, dur int) model.Session {
	return model.Session{Idx: idx, ClientID: model.LocationID(client), StartMinute: start, Duration: dur}
}

func TestResolveBigMPicksFeasibleDirection(t *testing.T) {
	w := model.Caregiver{ID: "cg-1", HasLicense: true}
	oracle := travel.New([]model.TravelEdge{
		{Src: "client-a", Dst: "client-b", Mode: model.ModeDriving, Minutes: 10, Meters: 2000},
		{Src: "client-b", Dst: "client-a", Mode: model.ModeDriving, Minutes: 10, Meters: 2000},
	}, nil)

	s1 := mustSession(0, "client-a", 480, 30) // 08:00-08:30
	s2 := mustSession(1, "client-b", 600, 30) // 10:00-10:30

	r, ok := resolveBigM(s1, s2, w, oracle, Config{Transport: model.TransportLicense})
	require.True(t, ok)
	assert.Equal(t, model.SessionIndex(0), r.predecessor)
	assert.Equal(t, model.SessionIndex(1), r.successor)
	assert.Equal(t, 10, r.commuteMinutes)
}

func TestResolveBigMInfeasibleWhenNeitherDirectionFits(t *testing.T) {
	w := model.Caregiver{ID: "cg-1", HasLicense: true}
	oracle := travel.New([]model.TravelEdge{
		{Src: "client-a", Dst: "client-b", Mode: model.ModeDriving, Minutes: 120, Meters: 2000},
		{Src: "client-b", Dst: "client-a", Mode: model.ModeDriving, Minutes: 120, Meters: 2000},
	}, nil)

	// Both sessions overlap in time; neither ordering leaves enough travel room.
	s1 := mustSession(0, "client-a", 480, 60)
	s2 := mustSession(1, "client-b", 500, 60)

	_, ok := resolveBigM(s1, s2, w, oracle, Config{Transport: model.TransportLicense})
	assert.False(t, ok)
}

func TestResolveBigMFlagsShortGap(t *testing.T) {
	w := model.Caregiver{ID: "cg-1", HasLicense: true}
	oracle := travel.New([]model.TravelEdge{
		{Src: "client-a", Dst: "client-b", Mode: model.ModeDriving, Minutes: 5, Meters: 1000},
	}, nil)

	s1 := mustSession(0, "client-a", 480, 30) // ends 510
	s2 := mustSession(1, "client-b", 520, 30) // gap = 520-510-5 = 5 < 30

	r, ok := resolveBigM(s1, s2, w, oracle, Config{Transport: model.TransportLicense})
	require.True(t, ok)
	assert.True(t, r.shortGap)
}

func TestAssembleBuildsSolvableModel(t *testing.T) {
	caregivers := []model.Caregiver{{ID: "cg-1", HasLicense: true}}
	sessions := []model.Session{
		{ClientID: "client-1", StartMinute: 600, Duration: 30, ServiceTag: "TOILETTE"},
	}
	oracle := travel.New(nil, nil).WithSelfEdges([]model.LocationID{"cg-1", "client-1"})

	in := instance.Build(sessions, caregivers, 1, instance.Config{}, nil)
	caregiverByID := map[model.LocationID]model.Caregiver{"cg-1": caregivers[0]}

	asm := Assemble(in, oracle, caregiverByID, Config{Transport: model.TransportLicense}, nil)

	require.NoError(t, asm.Model.Validate())
	assert.NotEmpty(t, asm.Model.Vars())
	assert.NotEmpty(t, asm.Model.Constraints())
	assert.Len(t, asm.Edges, len(asm.Model.Vars()))
}

func TestEdgeForReturnsResolvedMetadata(t *testing.T) {
	caregivers := []model.Caregiver{{ID: "cg-1", HasLicense: true}}
	sessions := []model.Session{
		{ClientID: "client-1", StartMinute: 600, Duration: 30, ServiceTag: "TOILETTE"},
	}
	oracle := travel.New(nil, nil).WithSelfEdges([]model.LocationID{"cg-1", "client-1"})

	in := instance.Build(sessions, caregivers, 1, instance.Config{}, nil)
	caregiverByID := map[model.LocationID]model.Caregiver{"cg-1": caregivers[0]}
	asm := Assemble(in, oracle, caregiverByID, Config{Transport: model.TransportLicense}, nil)

	require.NotEmpty(t, asm.Model.Vars())
	e := asm.EdgeFor(asm.Model.Vars()[0].ID())
	assert.Equal(t, model.LocationID("cg-1"), e.Triple.Caregiver)
}
