// Package reminder shows an undecorated window during the look-away phase
// with the break countdown and a skip button.
package reminder

import (
	"image/color"

	"lookaway/internal/core/cycle"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	widthFraction       = float32(0.18)
	heightFraction      = float32(0.16)
	defaultScreenWidth  = float32(1920)
	defaultScreenHeight = float32(1080)
)

var (
	textColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	timerColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window manages the reminder UI.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	timerLabel *canvas.Text
	skipButton *widget.Button
	enabled    bool
	visible    bool
	onSkip     func()
}

// New creates a hidden reminder window with the given background opacity.
func New(app fyne.App, opacity uint8) *Window {
	window := app.NewWindow("Look away")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: opacity})

	titleLabel := canvas.NewText("Look away", textColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText("Rest your eyes on something far away", textColor)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 14

	timerLabel := canvas.NewText("--:--", timerColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 28

	reminder := &Window{
		window:     window,
		background: background,
		timerLabel: timerLabel,
		enabled:    true,
	}
	reminder.skipButton = widget.NewButton("Skip", func() {
		if reminder.onSkip != nil {
			reminder.onSkip()
		}
	})

	content := container.NewCenter(container.NewVBox(titleLabel, messageLabel, timerLabel, container.NewCenter(reminder.skipButton)))
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.SetCloseIntercept(reminder.hide)
	return reminder
}

// SetOnSkip sets the skip handler.
func (reminder *Window) SetOnSkip(handler func()) {
	reminder.onSkip = handler
}

// SetEnabled allows or suppresses the window. Disabling hides it.
func (reminder *Window) SetEnabled(enabled bool) {
	reminder.enabled = enabled
	if !enabled {
		reminder.hide()
	}
}

// SetOpacity changes the background alpha.
func (reminder *Window) SetOpacity(opacity uint8) {
	reminder.background.FillColor = color.NRGBA{A: opacity}
	reminder.background.Refresh()
}

// Visible reports whether the window is shown.
func (reminder *Window) Visible() bool {
	return reminder.visible
}

// Update shows the window while the look-away phase runs and hides it
// otherwise. It must run on the fyne thread.
func (reminder *Window) Update(status cycle.Status) {
	if !reminder.enabled || status.Phase != cycle.PhaseLookAway || !status.LookAway.Running {
		reminder.hide()
		return
	}

	if reminder.timerLabel.Text != status.LookAway.Display {
		reminder.timerLabel.Text = status.LookAway.Display
		reminder.timerLabel.Refresh()
	}
	if !reminder.visible {
		reminder.visible = true
		reminder.resizeToScreenFraction()
		reminder.window.Show()
		reminder.window.RequestFocus()
	}
}

func (reminder *Window) hide() {
	if !reminder.visible {
		return
	}
	reminder.visible = false
	reminder.window.Hide()
}

func (reminder *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := reminder.window.Canvas().Size()
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * widthFraction
	height := screenSize.Height * heightFraction
	minSize := reminder.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	reminder.window.Resize(fyne.NewSize(width, height))
	reminder.window.CenterOnScreen()
}

// OpacityToAlpha converts a 0..1 opacity to a color alpha.
func OpacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
