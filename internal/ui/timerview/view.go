// Package timerview shows the active phase, its countdown and progress in a
// small window whose title tracks the countdown.
package timerview

import (
	"sync"
	"time"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Source supplies the cycle state and accepts display clicks.
type Source interface {
	Status() cycle.Status
	Toggle()
}

// View is the main timer window.
type View struct {
	window        fyne.Window
	source        Source
	phase         *widget.Label
	displayButton *widget.Button
	progress      *widget.ProgressBar
	onRender      func(cycle.Status)

	stop     chan struct{}
	stopOnce sync.Once
}

// New builds the timer window for source.
func New(app fyne.App, source Source) *View {
	view := &View{
		window:   app.NewWindow("Look Away"),
		source:   source,
		phase:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		progress: widget.NewProgressBar(),
		stop:     make(chan struct{}),
	}
	view.displayButton = widget.NewButton("", func() {
		view.source.Toggle()
		view.Refresh()
	})
	view.displayButton.Importance = widget.HighImportance
	view.progress.Min = 0
	view.progress.Max = 1
	view.progress.TextFormatter = func() string { return "" }

	view.window.SetContent(container.NewPadded(container.NewVBox(
		view.phase,
		view.displayButton,
		view.progress,
	)))
	view.window.Resize(fyne.NewSize(260, 140))
	view.window.SetIcon(theme.MediaPlayIcon())
	view.Refresh()
	return view
}

// Window returns the underlying fyne window.
func (view *View) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *View) Show() {
	view.window.Show()
}

// SetOnRender registers fn to run after every render with the rendered
// status.
func (view *View) SetOnRender(fn func(cycle.Status)) {
	view.onRender = fn
}

// Run redraws the view every interval until Stop is called.
func (view *View) Run(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-view.stop:
				return
			case <-ticker.C:
				fyne.Do(view.Refresh)
			}
		}
	}()
}

// Follow redraws the view whenever an engine changes state, without waiting
// for the next Run tick. It returns when events is closed.
func (view *View) Follow(events <-chan timekeeper.Event) {
	go func() {
		for event := range events {
			if event.Type == timekeeper.EventTick {
				continue
			}
			fyne.Do(view.Refresh)
		}
	}()
}

// Stop ends the render loop started by Run.
func (view *View) Stop() {
	view.stopOnce.Do(func() {
		close(view.stop)
	})
}

// Refresh renders the current status. It must run on the fyne thread.
func (view *View) Refresh() {
	view.render(view.source.Status())
}

func (view *View) render(status cycle.Status) {
	active := activeSnapshot(status)

	view.window.SetTitle(status.Title)
	view.phase.SetText(phaseLabel(status.Phase, active))
	view.displayButton.SetText(active.Display)
	view.progress.SetValue(active.Progress)

	if view.onRender != nil {
		view.onRender(status)
	}
}

func activeSnapshot(status cycle.Status) timekeeper.Snapshot {
	if status.Phase == cycle.PhaseLookAway {
		return status.LookAway
	}
	return status.Work
}

func phaseLabel(phase cycle.Phase, snapshot timekeeper.Snapshot) string {
	label := "Work"
	if phase == cycle.PhaseLookAway {
		label = "Look away"
	}
	switch {
	case snapshot.Paused:
		return label + " (paused)"
	case !snapshot.Running:
		return label + " (stopped)"
	}
	return label
}
