package preferences

import (
	"testing"
	"time"

	"lookaway/internal/core/model"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigsAreValid(t *testing.T) {
	settings := DefaultSettings()

	work := settings.WorkConfig()
	require.NoError(t, work.Validate())
	assert.Equal(t, "work", work.Name)
	assert.Equal(t, 10*time.Minute, work.Span())

	lookAway := settings.LookAwayConfig()
	require.NoError(t, lookAway.Validate())
	assert.Equal(t, "look away", lookAway.Name)
	assert.Equal(t, 15*time.Second, lookAway.Span())

	assert.Equal(t, 5*time.Minute, settings.IdleConfig().ResetAfter)
}

func TestWindowShowsSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)

	assert.Equal(t, "10", prefs.workDuration.Text)
	assert.Equal(t, "minutes", prefs.workUnit.Selected)
	assert.Equal(t, "15", prefs.lookAwayDuration.Text)
	assert.Equal(t, "seconds", prefs.lookAwayUnit.Selected)
	assert.Equal(t, "mm:ss", prefs.displayFormat.Text)
	assert.True(t, prefs.sound.Checked)
	assert.Equal(t, "5", prefs.idleMinutes.Text)
}

func TestWindowSave(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	calls := 0
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = settings
		calls++
	})

	prefs.workDuration.SetText("0.5")
	prefs.workUnit.SetSelected("hours")
	prefs.lookAwayDuration.SetText("20")
	prefs.displayFormat.SetText("m:ss")
	test.Tap(prefs.sound)
	test.Tap(prefs.reminder)
	prefs.idleMinutes.SetText("2")
	test.Tap(prefs.saveButton)

	require.Equal(t, 1, calls)
	assert.Equal(t, 0.5, saved.WorkDuration)
	assert.Equal(t, model.UnitHours, saved.WorkUnit)
	assert.Equal(t, 30*time.Minute, saved.WorkConfig().Span())
	assert.Equal(t, 20.0, saved.LookAwayDuration)
	assert.Equal(t, "m:ss", saved.DisplayFormat)
	assert.False(t, saved.SoundEnabled)
	assert.False(t, saved.ReminderEnabled)
	assert.InDelta(t, 0.85, saved.ReminderOpacity, 0.001)
	assert.Equal(t, 2*time.Minute, saved.IdleResetAfter)
	assert.Equal(t, saved.WorkDuration, prefs.Settings().WorkDuration)
}

func TestWindowSaveKeepsInvalidFields(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.workDuration.SetText("-4")
	prefs.lookAwayDuration.SetText("soon")
	test.Tap(prefs.saveButton)

	assert.Equal(t, 10.0, saved.WorkDuration)
	assert.Equal(t, 15.0, saved.LookAwayDuration)
	assert.Equal(t, "10", prefs.workDuration.Text)
}

func TestWindowCancelRestoresValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	calls := 0
	prefs := New(app, DefaultSettings(), func(Settings) { calls++ })
	prefs.workDuration.SetText("99")
	test.Tap(prefs.cancelButton)

	assert.Zero(t, calls)
	assert.Equal(t, "10", prefs.workDuration.Text)
}

func TestSanitizedFallsBackPerPhase(t *testing.T) {
	settings := DefaultSettings()
	settings.WorkDuration = 1e30
	settings.WorkUnit = model.UnitHours
	settings.LookAwayDuration = 20

	sanitized := settings.Sanitized()
	assert.Equal(t, 10.0, sanitized.WorkDuration)
	assert.Equal(t, model.UnitMinutes, sanitized.WorkUnit)
	assert.Equal(t, 20.0, sanitized.LookAwayDuration)
}

func TestWindowSaveRejectsUnrepresentableDurations(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.workDuration.SetText("1e30")
	prefs.workUnit.SetSelected("hours")
	prefs.lookAwayDuration.SetText("1e-12")
	test.Tap(prefs.saveButton)

	assert.Equal(t, 10.0, saved.WorkDuration)
	assert.Equal(t, model.UnitMinutes, saved.WorkUnit)
	assert.Equal(t, 15.0, saved.LookAwayDuration)
	require.NoError(t, saved.WorkConfig().Validate())
	require.NoError(t, saved.LookAwayConfig().Validate())

	prefs.workDuration.SetText("inf")
	test.Tap(prefs.saveButton)
	assert.Equal(t, 10.0, saved.WorkDuration)
}

func TestWindowKeepsFractionalIdleMinutes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) { saved = settings })

	prefs.idleMinutes.SetText("0.5")
	test.Tap(prefs.saveButton)

	assert.Equal(t, 30*time.Second, saved.IdleResetAfter)
	assert.Equal(t, "0.5", prefs.idleMinutes.Text)
}
