package solver

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlbnmaria/careplan/pkg/assembler"
	"github.com/stlbnmaria/careplan/pkg/instance"
	"github.com/stlbnmaria/careplan/pkg/model"
	"github.com/stlbnmaria/careplan/pkg/travel"
)

func buildSingleDaySolve(t *testing.T) (*instance.Instance, *assembler.Assembled) {
	t.Helper()
	caregivers := []model.Caregiver{{ID: "cg-1", HasLicense: true}}
	sessions := []model.Session{
		{ClientID: "client-1", StartMinute: 600, Duration: 30, ServiceTag: "TOILETTE"},
		{ClientID: "client-2", StartMinute: 700, Duration: 30, ServiceTag: "TOILETTE"},
	}
	oracle := travel.New([]model.TravelEdge{
		{Src: "client-1", Dst: "client-2", Mode: model.ModeDriving, Minutes: 10, Meters: 1000},
		{Src: "client-2", Dst: "client-1", Mode: model.ModeDriving, Minutes: 10, Meters: 1000},
	}, nil).WithSelfEdges([]model.LocationID{"cg-1", "client-1", "client-2"})

	in := instance.Build(sessions, caregivers, 1, instance.Config{}, nil)
	caregiverByID := map[model.LocationID]model.Caregiver{"cg-1": caregivers[0]}
	asm := assembler.Assemble(in, oracle, caregiverByID, assembler.Config{Transport: model.TransportLicense}, nil)
	return in, asm
}

func TestSolveProducesOptimalResultWithRoutes(t *testing.T) {
	in, asm := buildSingleDaySolve(t)

	res, err := Solve(context.Background(), in, asm, 0, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, res.Status)
	assert.False(t, res.NotProvenOptimal)
	require.Len(t, res.Routes, 1)
	assert.Equal(t, model.LocationID("cg-1"), res.Routes[0].Caregiver)
	// route must start and end at the caregiver's own sentinels.
	first := in.Session(res.Routes[0].Sessions[0])
	last := in.Session(res.Routes[0].Sessions[len(res.Routes[0].Sessions)-1])
	assert.True(t, first.IsSentinel && first.IsMorning)
	assert.True(t, last.IsSentinel && !last.IsMorning)
}

func TestSolveReportsObjectiveComponents(t *testing.T) {
	in, asm := buildSingleDaySolve(t)

	res, err := Solve(context.Background(), in, asm, 0, nil)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.TotalCommuteMinutes, 0)
	assert.GreaterOrEqual(t, res.ShortGapCount, 0)
}

func TestSolveRouteVisitsClientsInTimeOrder(t *testing.T) {
	in, asm := buildSingleDaySolve(t)

	res, err := Solve(context.Background(), in, asm, 0, nil)
	require.NoError(t, err)
	require.Len(t, res.Routes, 1)

	var gotClients []model.LocationID
	for _, idx := range res.Routes[0].Sessions {
		gotClients = append(gotClients, in.Session(idx).ClientID)
	}
	wantClients := []model.LocationID{"cg-1", "client-1", "client-2", "cg-1"}

	if diff := cmp.Diff(wantClients, gotClients); diff != "" {
		t.Fatalf("route client order mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "optimal", StatusOptimal.String())
	assert.Equal(t, "feasible-within-budget", StatusFeasibleWithinBudget.String())
	assert.Equal(t, "infeasible", StatusInfeasible.String())
	assert.Equal(t, "timeout-no-incumbent", StatusTimeoutNoIncumbent.String())
}
