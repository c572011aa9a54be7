// Package tray builds the system tray menu for the look-away cycle.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "Look Away"

// MenuSetter installs a tray menu. fyne's desktop.App satisfies it.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnStartStop   func()
	OnPauseResume func()
	OnSkip        func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         MenuSetter
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	skipItem    *fyne.MenuItem
	resetItem   *fyne.MenuItem
	menu        *fyne.Menu
	running     bool
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: stopped", nil)
	manager.statusItem.Disabled = true
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStartStop))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnPauseResume))
	manager.skipItem = fyne.NewMenuItem("Skip phase", invoke(&manager.callbacks.OnSkip))
	manager.resetItem = fyne.NewMenuItem("Restart phase", invoke(&manager.callbacks.OnReset))

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	manager.refreshItems()
	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshItems()
}

// SetState updates the running and paused flags.
func (manager *Manager) SetState(running, paused bool) {
	if running == manager.running && paused == manager.paused {
		return
	}
	manager.running = running
	manager.paused = paused
	manager.refreshItems()
}

func (manager *Manager) refreshItems() {
	status := manager.statusLabel
	switch {
	case status == "":
		status = "stopped"
	case manager.paused:
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)

	if manager.running || manager.paused {
		manager.startItem.Label = "Stop"
	} else {
		manager.startItem.Label = "Start"
	}
	if manager.paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.pauseItem.Disabled = !manager.running && !manager.paused
	manager.skipItem.Disabled = !manager.running
	manager.resetItem.Disabled = !manager.running && !manager.paused

	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
