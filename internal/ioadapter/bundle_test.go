package ioadapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlbnmaria/careplan/pkg/model"
)

const sampleBundle = `{
  "caregivers": [
    {"id": "cg-1", "home_lat": 48.1, "home_lon": 2.3, "has_vehicle": true, "has_license": true,
     "competence": ["TOILETTE", "ACCOMPAGNEMENTS COURSES PA"], "unavailable_days": [12]}
  ],
  "travel": [
    {"src": "cg-1", "dst": "client-1", "mode": "driving", "seconds": 600, "meters": 5000}
  ],
  "sessions": {
    "1": [
      {"day_of_month": 1, "client_id": "client-1", "start_minute": 480, "duration_minutes": 30, "service_tag": "TOILETTE"}
    ]
  }
}`

func writeSampleBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBundle), 0o644))
	return path
}

func TestLoadBundle(t *testing.T) {
	b, err := LoadBundle(writeSampleBundle(t))
	require.NoError(t, err)

	require.Len(t, b.Caregivers, 1)
	assert.Equal(t, "cg-1", b.Caregivers[0].ID)
	require.Len(t, b.Sessions["1"], 1)
}

func TestLoadBundleMissingFile(t *testing.T) {
	_, err := LoadBundle(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestBundleCaregiversCanonicalizesCompetence(t *testing.T) {
	b, err := LoadBundle(writeSampleBundle(t))
	require.NoError(t, err)

	caregivers := b.Caregivers()
	require.Len(t, caregivers, 1)
	assert.True(t, caregivers[0].IsCompetent("ACCOMPAGNEMENTS COURSES"))
	assert.True(t, caregivers[0].Unavailable(12))
	assert.False(t, caregivers[0].Unavailable(13))
}

func TestBundleTravelEdgesConvertSecondsToMinutes(t *testing.T) {
	b, err := LoadBundle(writeSampleBundle(t))
	require.NoError(t, err)

	edges := b.TravelEdges()
	require.Len(t, edges, 1)
	assert.Equal(t, 10, edges[0].Minutes)
	assert.Equal(t, model.ModeDriving, edges[0].Mode)
}

func TestBundleSessionsForDay(t *testing.T) {
	b, err := LoadBundle(writeSampleBundle(t))
	require.NoError(t, err)

	sessions := b.SessionsForDay("1", 1)
	require.Len(t, sessions, 1)
	assert.Equal(t, model.LocationID("client-1"), sessions[0].ClientID)
	assert.Equal(t, 1, sessions[0].DayOfMonth)

	assert.Empty(t, b.SessionsForDay("99", 99))
}
