// Package storage persists user preferences as YAML.
package storage

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"lookaway/internal/core/model"
	"lookaway/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkDuration          float64  `yaml:"work_duration,omitempty"`
	WorkUnit              string   `yaml:"work_unit,omitempty"`
	LookAwayDuration      float64  `yaml:"look_away_duration,omitempty"`
	LookAwayUnit          string   `yaml:"look_away_unit,omitempty"`
	RefreshIntervalMillis int      `yaml:"refresh_interval_ms,omitempty"`
	DisplayFormat         string   `yaml:"display_format,omitempty"`
	SoundEnabled          *bool    `yaml:"sound_enabled,omitempty"`
	Volume                *float64 `yaml:"volume,omitempty"`
	DesktopNotifications  *bool    `yaml:"desktop_notifications,omitempty"`
	ReminderEnabled       *bool    `yaml:"reminder_enabled,omitempty"`
	ReminderOpacity       float64  `yaml:"reminder_opacity,omitempty"`
	IdleResetEnabled      *bool    `yaml:"idle_reset_enabled,omitempty"`
	IdleResetAfterMinutes float64  `yaml:"idle_reset_after_minutes,omitempty"`
	MQTTBroker            string   `yaml:"mqtt_broker,omitempty"`
	MQTTTopic             string   `yaml:"mqtt_topic,omitempty"`
	HTTPAddr              string   `yaml:"http_addr,omitempty"`
	LogLevel              string   `yaml:"log_level,omitempty"`
}

// ConfigPath returns the settings file location for appName.
func ConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadFrom reads user preferences from configPath. A missing file yields the
// defaults. Fields that would make an invalid timer keep their default.
func LoadFrom(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Sanitized(), nil
}

// SaveTo writes user preferences to configPath, creating its directory.
func SaveTo(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		WorkDuration:          settings.WorkDuration,
		WorkUnit:              settings.WorkUnit.String(),
		LookAwayDuration:      settings.LookAwayDuration,
		LookAwayUnit:          settings.LookAwayUnit.String(),
		RefreshIntervalMillis: int(settings.RefreshInterval / time.Millisecond),
		DisplayFormat:         settings.DisplayFormat,
		SoundEnabled:          &settings.SoundEnabled,
		Volume:                &settings.Volume,
		DesktopNotifications:  &settings.DesktopNotifications,
		ReminderEnabled:       &settings.ReminderEnabled,
		ReminderOpacity:       settings.ReminderOpacity,
		IdleResetEnabled:      &settings.IdleResetEnabled,
		IdleResetAfterMinutes: settings.IdleResetAfter.Minutes(),
		MQTTBroker:            settings.MQTTBroker,
		MQTTTopic:             settings.MQTTTopic,
		HTTPAddr:              settings.HTTPAddr,
		LogLevel:              settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkDuration > 0 {
		settings.WorkDuration = fileData.WorkDuration
	}
	if unit, err := model.ParseUnit(fileData.WorkUnit); err == nil {
		settings.WorkUnit = unit
	}
	if fileData.LookAwayDuration > 0 {
		settings.LookAwayDuration = fileData.LookAwayDuration
	}
	if unit, err := model.ParseUnit(fileData.LookAwayUnit); err == nil {
		settings.LookAwayUnit = unit
	}
	if fileData.RefreshIntervalMillis > 0 {
		settings.RefreshInterval = time.Duration(fileData.RefreshIntervalMillis) * time.Millisecond
	}
	if fileData.DisplayFormat != "" {
		settings.DisplayFormat = fileData.DisplayFormat
	}

	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.Volume != nil {
		settings.Volume = *fileData.Volume
	}
	if fileData.DesktopNotifications != nil {
		settings.DesktopNotifications = *fileData.DesktopNotifications
	}
	if fileData.ReminderEnabled != nil {
		settings.ReminderEnabled = *fileData.ReminderEnabled
	}
	if fileData.ReminderOpacity >= 0.7 && fileData.ReminderOpacity <= 0.95 {
		settings.ReminderOpacity = fileData.ReminderOpacity
	}
	if fileData.IdleResetEnabled != nil {
		settings.IdleResetEnabled = *fileData.IdleResetEnabled
	}
	if fileData.IdleResetAfterMinutes > 0 && !math.IsInf(fileData.IdleResetAfterMinutes, 0) {
		settings.IdleResetAfter = time.Duration(fileData.IdleResetAfterMinutes * float64(time.Minute))
	}

	if fileData.MQTTBroker != "" {
		settings.MQTTBroker = fileData.MQTTBroker
	}
	if fileData.MQTTTopic != "" {
		settings.MQTTTopic = fileData.MQTTTopic
	}
	if fileData.HTTPAddr != "" {
		settings.HTTPAddr = fileData.HTTPAddr
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
