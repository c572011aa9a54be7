package preferences

import (
	"math"
	"strconv"
	"strings"
	"time"

	"lookaway/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var unitOptions = []string{
	model.UnitSeconds.String(),
	model.UnitMinutes.String(),
	model.UnitHours.String(),
}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	workDuration     *widget.Entry
	workUnit         *widget.Select
	lookAwayDuration *widget.Entry
	lookAwayUnit     *widget.Select
	displayFormat    *widget.Entry
	sound            *widget.Check
	volume           *widget.Slider
	desktop          *widget.Check
	reminder         *widget.Check
	opacity          *widget.Slider
	idleCheck        *widget.Check
	idleMinutes      *widget.Entry
	saveButton       *widget.Button
	cancelButton     *widget.Button
}

// New creates a preferences window. onSave receives the edited settings.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Look Away Settings")

	prefs := &Window{
		window:           window,
		onSave:           onSave,
		workDuration:     widget.NewEntry(),
		workUnit:         widget.NewSelect(unitOptions, nil),
		lookAwayDuration: widget.NewEntry(),
		lookAwayUnit:     widget.NewSelect(unitOptions, nil),
		displayFormat:    widget.NewEntry(),
		sound:            widget.NewCheck("Play a sound on each switch", nil),
		volume:           widget.NewSlider(-5, 2),
		desktop:          widget.NewCheck("Show desktop notifications", nil),
		reminder:         widget.NewCheck("Show a reminder window while looking away", nil),
		opacity:          widget.NewSlider(0.7, 0.95),
		idleCheck:        widget.NewCheck("Restart work after inactivity", nil),
		idleMinutes:      widget.NewEntry(),
	}
	prefs.volume.Step = 0.5
	prefs.opacity.Step = 0.01
	prefs.displayFormat.SetPlaceHolder("mm:ss")

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work for"), prefs.workDuration, prefs.workUnit),
		container.NewHBox(widget.NewLabel("Look away for"), prefs.lookAwayDuration, prefs.lookAwayUnit),
		container.NewHBox(widget.NewLabel("Display format"), prefs.displayFormat),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		widget.NewLabel("Volume"),
		prefs.volume,
		prefs.desktop,
		prefs.reminder,
		widget.NewLabel("Reminder opacity"),
		prefs.opacity,
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Inactive for"), prefs.idleMinutes, widget.NewLabel("min")),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.cancelButton = widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), prefs.cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 540))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workDuration.SetText(formatNumber(settings.WorkDuration))
	prefs.workUnit.SetSelected(settings.WorkUnit.String())
	prefs.lookAwayDuration.SetText(formatNumber(settings.LookAwayDuration))
	prefs.lookAwayUnit.SetSelected(settings.LookAwayUnit.String())
	prefs.displayFormat.SetText(settings.DisplayFormat)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.SetValue(settings.Volume)
	prefs.desktop.SetChecked(settings.DesktopNotifications)
	prefs.reminder.SetChecked(settings.ReminderEnabled)
	prefs.opacity.SetValue(settings.ReminderOpacity)
	prefs.idleCheck.SetChecked(settings.IdleResetEnabled)
	prefs.idleMinutes.SetText(formatNumber(settings.IdleResetAfter.Minutes()))
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if duration, ok := parsePositiveFloat(prefs.workDuration.Text); ok {
		settings.WorkDuration = duration
	}
	if unit, err := model.ParseUnit(prefs.workUnit.Selected); err == nil {
		settings.WorkUnit = unit
	}
	if duration, ok := parsePositiveFloat(prefs.lookAwayDuration.Text); ok {
		settings.LookAwayDuration = duration
	}
	if unit, err := model.ParseUnit(prefs.lookAwayUnit.Selected); err == nil {
		settings.LookAwayUnit = unit
	}
	if format := strings.TrimSpace(prefs.displayFormat.Text); format != "" {
		settings.DisplayFormat = format
	}
	if minutes, ok := parsePositiveFloat(prefs.idleMinutes.Text); ok {
		settings.IdleResetAfter = time.Duration(minutes * float64(time.Minute))
	}

	if settings.WorkConfig().Validate() != nil {
		settings.WorkDuration = prefs.settings.WorkDuration
		settings.WorkUnit = prefs.settings.WorkUnit
	}
	if settings.LookAwayConfig().Validate() != nil {
		settings.LookAwayDuration = prefs.settings.LookAwayDuration
		settings.LookAwayUnit = prefs.settings.LookAwayUnit
	}
	settings = settings.Sanitized()

	settings.SoundEnabled = prefs.sound.Checked
	settings.Volume = prefs.volume.Value
	settings.DesktopNotifications = prefs.desktop.Checked
	settings.ReminderEnabled = prefs.reminder.Checked
	settings.ReminderOpacity = prefs.opacity.Value
	settings.IdleResetEnabled = prefs.idleCheck.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed <= 0 || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
