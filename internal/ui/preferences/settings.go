package preferences

import (
	"time"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/display"
	"lookaway/internal/core/model"
	"lookaway/internal/notify"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration     float64
	WorkUnit         model.Unit
	LookAwayDuration float64
	LookAwayUnit     model.Unit
	RefreshInterval  time.Duration
	DisplayFormat    string

	SoundEnabled         bool
	Volume               float64
	DesktopNotifications bool
	ReminderEnabled      bool
	ReminderOpacity      float64

	IdleResetEnabled bool
	IdleResetAfter   time.Duration

	MQTTBroker string
	MQTTTopic  string
	HTTPAddr   string
	LogLevel   string
}

// DefaultSettings returns a ten minute work phase and a fifteen second
// look-away phase.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:         10,
		WorkUnit:             model.UnitMinutes,
		LookAwayDuration:     15,
		LookAwayUnit:         model.UnitSeconds,
		RefreshInterval:      100 * time.Millisecond,
		DisplayFormat:        display.DefaultPattern,
		SoundEnabled:         true,
		DesktopNotifications: true,
		ReminderEnabled:      true,
		ReminderOpacity:      0.85,
		IdleResetEnabled:     true,
		IdleResetAfter:       5 * time.Minute,
		MQTTTopic:            notify.DefaultTopic,
		LogLevel:             "info",
	}
}

// WorkConfig converts settings to the work engine configuration.
func (settings Settings) WorkConfig() model.TimerConfig {
	return model.TimerConfig{
		Name:            string(cycle.PhaseWork),
		Duration:        settings.WorkDuration,
		Unit:            settings.WorkUnit,
		RefreshInterval: settings.RefreshInterval,
		DisplayFormat:   settings.DisplayFormat,
	}
}

// LookAwayConfig converts settings to the look-away engine configuration.
func (settings Settings) LookAwayConfig() model.TimerConfig {
	return model.TimerConfig{
		Name:            string(cycle.PhaseLookAway),
		Duration:        settings.LookAwayDuration,
		Unit:            settings.LookAwayUnit,
		RefreshInterval: settings.RefreshInterval,
		DisplayFormat:   settings.DisplayFormat,
	}
}

// Sanitized returns settings whose timers can run: a phase whose duration and
// unit do not form a valid span falls back to the default for that phase.
func (settings Settings) Sanitized() Settings {
	defaults := DefaultSettings()
	if settings.RefreshInterval <= 0 {
		settings.RefreshInterval = defaults.RefreshInterval
	}
	if settings.WorkConfig().Validate() != nil {
		settings.WorkDuration = defaults.WorkDuration
		settings.WorkUnit = defaults.WorkUnit
	}
	if settings.LookAwayConfig().Validate() != nil {
		settings.LookAwayDuration = defaults.LookAwayDuration
		settings.LookAwayUnit = defaults.LookAwayUnit
	}
	if settings.IdleResetAfter <= 0 {
		settings.IdleResetAfter = defaults.IdleResetAfter
	}
	return settings
}

// IdleConfig converts settings to the idle reset configuration.
func (settings Settings) IdleConfig() cycle.IdleConfig {
	return cycle.IdleConfig{
		ResetAfter:    settings.IdleResetAfter,
		CheckInterval: 5 * time.Second,
	}
}
