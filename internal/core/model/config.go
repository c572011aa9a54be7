package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrInvalidConfig indicates a timer configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid timer config")

// Unit scales TimerConfig.Duration into a time span.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitMinutes
	UnitHours
)

// Multiplier returns the span of one unit.
func (unit Unit) Multiplier() time.Duration {
	switch unit {
	case UnitSeconds:
		return time.Second
	case UnitMinutes:
		return time.Minute
	case UnitHours:
		return time.Hour
	}
	return 0
}

func (unit Unit) String() string {
	switch unit {
	case UnitSeconds:
		return "seconds"
	case UnitMinutes:
		return "minutes"
	case UnitHours:
		return "hours"
	}
	return fmt.Sprintf("unit(%d)", int(unit))
}

// ParseUnit accepts "seconds", "minutes" or "hours" and their singular forms.
func ParseUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "s", "sec", "second", "seconds":
		return UnitSeconds, nil
	case "m", "min", "minute", "minutes":
		return UnitMinutes, nil
	case "h", "hour", "hours":
		return UnitHours, nil
	}
	return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidConfig, value)
}

// TimerConfig describes one countdown engine.
type TimerConfig struct {
	Name            string
	Duration        float64
	Unit            Unit
	RefreshInterval time.Duration
	DisplayFormat   string
	OnComplete      func()
}

// Span returns Duration expressed in Unit.
func (config TimerConfig) Span() time.Duration {
	return time.Duration(config.Duration * float64(config.Unit.Multiplier()))
}

// Validate reports whether the engine can run with this configuration.
func (config TimerConfig) Validate() error {
	if config.Unit.Multiplier() == 0 {
		return fmt.Errorf("%w: unknown unit %s", ErrInvalidConfig, config.Unit)
	}
	if math.IsNaN(config.Duration) || math.IsInf(config.Duration, 0) {
		return fmt.Errorf("%w: duration must be finite, got %v", ErrInvalidConfig, config.Duration)
	}
	if config.Duration*float64(config.Unit.Multiplier()) >= math.MaxInt64 {
		return fmt.Errorf("%w: duration too long, got %v %s", ErrInvalidConfig, config.Duration, config.Unit)
	}
	if config.Duration <= 0 || config.Span() <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v %s", ErrInvalidConfig, config.Duration, config.Unit)
	}
	if config.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh interval must be positive, got %v", ErrInvalidConfig, config.RefreshInterval)
	}
	return nil
}
