package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name   string
		config TimerConfig
		want   time.Duration
	}{
		{"seconds", TimerConfig{Duration: 15, Unit: UnitSeconds}, 15 * time.Second},
		{"minutes", TimerConfig{Duration: 10, Unit: UnitMinutes}, 10 * time.Minute},
		{"hours", TimerConfig{Duration: 1, Unit: UnitHours}, time.Hour},
		{"fractional", TimerConfig{Duration: 1.5, Unit: UnitMinutes}, 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.Span())
		})
	}
}

func TestValidate(t *testing.T) {
	valid := TimerConfig{Duration: 15, Unit: UnitSeconds, RefreshInterval: 100 * time.Millisecond}
	require.NoError(t, valid.Validate())

	zeroDuration := valid
	zeroDuration.Duration = 0
	assert.ErrorIs(t, zeroDuration.Validate(), ErrInvalidConfig)

	negativeDuration := valid
	negativeDuration.Duration = -3
	assert.ErrorIs(t, negativeDuration.Validate(), ErrInvalidConfig)

	zeroRefresh := valid
	zeroRefresh.RefreshInterval = 0
	assert.ErrorIs(t, zeroRefresh.Validate(), ErrInvalidConfig)

	badUnit := valid
	badUnit.Unit = Unit(42)
	assert.ErrorIs(t, badUnit.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsUnrepresentableDurations(t *testing.T) {
	for _, duration := range []float64{1e-12, math.Inf(1), math.Inf(-1), math.NaN(), 1e30} {
		config := TimerConfig{Duration: duration, Unit: UnitSeconds, RefreshInterval: 100 * time.Millisecond}
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig, "duration %v", duration)
	}

	longest := TimerConfig{Duration: 2000000, Unit: UnitHours, RefreshInterval: time.Second}
	assert.NoError(t, longest.Validate())
}

func TestParseUnit(t *testing.T) {
	for input, want := range map[string]Unit{
		"seconds": UnitSeconds,
		"Minute":  UnitMinutes,
		" hours ": UnitHours,
		"h":       UnitHours,
	} {
		got, err := ParseUnit(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseUnit("fortnights")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestUnitStringRoundTrip(t *testing.T) {
	for _, unit := range []Unit{UnitSeconds, UnitMinutes, UnitHours} {
		parsed, err := ParseUnit(unit.String())
		require.NoError(t, err)
		assert.Equal(t, unit, parsed)
	}
}
