package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeServiceTag(t *testing.T) {
	assert.Equal(t, "ACCOMPAGNEMENTS COURSES", CanonicalizeServiceTag("ACCOMPAGNEMENTS COURSES PA"))
	assert.Equal(t, "ACCOMPAGNEMENTS COURSES", CanonicalizeServiceTag("  accompagnements courses pa  "))
	assert.Equal(t, "TOILETTE", CanonicalizeServiceTag("toilette"))
}

func TestIsAdministrativeTag(t *testing.T) {
	assert.True(t, IsAdministrativeTag("administration"))
	assert.True(t, IsAdministrativeTag(" Formation "))
	assert.False(t, IsAdministrativeTag("TOILETTE"))
}

func TestCaregiverHasCar(t *testing.T) {
	licensed := Caregiver{HasLicense: true}
	unlicensed := Caregiver{HasLicense: false}

	assert.True(t, licensed.HasCar(TransportDriving))
	assert.True(t, unlicensed.HasCar(TransportDriving))
	assert.True(t, licensed.HasCar(TransportLicense))
	assert.False(t, unlicensed.HasCar(TransportLicense))
}

func TestCaregiverIsCompetent(t *testing.T) {
	c := Caregiver{Competence: map[string]struct{}{"TOILETTE": {}}}

	assert.True(t, c.IsCompetent("TOILETTE"))
	assert.True(t, c.IsCompetent(ServiceCommute), "commute must always be allowed")
	assert.False(t, c.IsCompetent("REPAS"))
}

func TestCaregiverUnavailable(t *testing.T) {
	c := Caregiver{UnavailableDays: map[int]struct{}{12: {}}}
	assert.True(t, c.Unavailable(12))
	assert.False(t, c.Unavailable(13))
}

func TestSessionEndMinute(t *testing.T) {
	s := Session{StartMinute: 480, Duration: 45}
	assert.Equal(t, 525, s.EndMinute())
}

func TestNewSentinelPair(t *testing.T) {
	morning, evening := NewSentinelPair("cg-1", 14)

	require.True(t, morning.IsSentinel)
	require.True(t, morning.IsMorning)
	assert.Equal(t, MorningSentinelMinute, morning.StartMinute)
	assert.Equal(t, LocationID("cg-1"), morning.CaregiverID)
	assert.Equal(t, 0, morning.Duration)

	require.True(t, evening.IsSentinel)
	require.False(t, evening.IsMorning)
	assert.Equal(t, EveningSentinelMinute, evening.StartMinute)
	assert.Equal(t, LocationID("cg-1"), evening.CaregiverID)

	assert.Equal(t, ServiceCommute, morning.ServiceTag)
	assert.Equal(t, ServiceCommute, evening.ServiceTag)
}
