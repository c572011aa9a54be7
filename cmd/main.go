// Command lookaway alternates a work countdown with a short look-away break.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/timekeeper"
	"lookaway/internal/logs"
	"lookaway/internal/notify"
	"lookaway/internal/platform"
	"lookaway/internal/storage"
	"lookaway/internal/ui/preferences"
	"lookaway/internal/ui/reminder"
	"lookaway/internal/ui/timerview"
	"lookaway/internal/ui/tray"
	"lookaway/internal/web"
	"lookaway/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"
)

const appName = "lookaway"

func main() {
	var flags commandFlags
	flag.StringVar(&flags.configPath, "config", "", "settings file (default: user config dir)")
	flag.StringVar(&flags.logLevel, "log-level", "", "log level, overrides the settings file")
	flag.StringVar(&flags.httpAddr, "http", "", "JSON status address, overrides the settings file")
	flag.BoolVar(&flags.autostart, "autostart", false, "start the work phase immediately")
	flag.Parse()

	settings, configPath, loadErr := resolveSettings(flags)
	levelErr := logs.SetLevel(settings.LogLevel)
	logger := logs.NewLogger("main")
	if loadErr != nil {
		logger.WithError(loadErr).Warn("settings not loaded, using defaults")
	}
	if levelErr != nil {
		logger.WithError(levelErr).Warn("invalid log level")
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.WithError(err).Error("single instance")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	if err := run(settings, configPath, flags.autostart, logger); err != nil {
		logger.WithError(err).Error("fatal")
	}
}

func run(settings preferences.Settings, configPath string, autostart bool, logger *logrus.Logger) error {
	work, err := timekeeper.New(settings.WorkConfig(), timekeeper.Options{Logger: logs.NewLogger("work")})
	if err != nil {
		return err
	}
	lookAway, err := timekeeper.New(settings.LookAwayConfig(), timekeeper.Options{Logger: logs.NewLogger("look away")})
	if err != nil {
		return err
	}

	senders := newSenders(settings, logger)
	dispatcher, err := notify.NewDispatcher(len(senders.all()), logs.NewLogger("notify"), senders.all()...)
	if err != nil {
		return err
	}
	defer senders.close()
	defer dispatcher.Close()

	timer := cycle.New(work, lookAway, dispatcher, cycle.Options{Logger: logs.NewLogger("cycle")})
	defer timer.Close()

	idle := platform.NewIdleProvider()
	if settings.IdleResetEnabled {
		timer.WatchIdle(idle, settings.IdleConfig())
	}

	if settings.HTTPAddr != "" {
		srv := web.New(settings.HTTPAddr, timer, logs.NewLogger("web"))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Error("status server")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	fyneApp := app.NewWithID("com.lookaway.app")
	fyneApp.SetIcon(resources.MustLogo(resources.IconActive))

	view := timerview.New(fyneApp, timer)
	view.Window().SetMaster()
	defer view.Stop()

	reminderWindow := reminder.New(fyneApp, reminder.OpacityToAlpha(settings.ReminderOpacity))
	reminderWindow.SetEnabled(settings.ReminderEnabled)
	reminderWindow.SetOnSkip(func() {
		timer.Skip()
		view.Refresh()
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(timer, senders, idle, updated, logger)
		reminderWindow.SetEnabled(updated.ReminderEnabled)
		reminderWindow.SetOpacity(reminder.OpacityToAlpha(updated.ReminderOpacity))
		if err := storage.SaveTo(configPath, updated); err != nil {
			logger.WithError(err).Warn("settings not saved")
		}
		view.Refresh()
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnPreferences: prefsWindow.Show,
			OnStartStop: func() {
				if timer.IsRunning() || timer.IsPaused() {
					timer.Stop()
				} else {
					timer.Start()
				}
				view.Refresh()
			},
			OnPauseResume: func() {
				if timer.IsPaused() {
					timer.Resume()
				} else {
					timer.Pause()
				}
				view.Refresh()
			},
			OnSkip: func() {
				timer.Skip()
				view.Refresh()
			},
			OnReset: func() {
				timer.Reset()
				view.Refresh()
			},
			OnQuit: fyneApp.Quit,
		})
		icons := newTrayIcons(desktopApp)
		view.SetOnRender(func(status cycle.Status) {
			running := status.Work.Running || status.LookAway.Running
			paused := status.Work.Paused || status.LookAway.Paused
			trayManager.SetStatus(status.Title)
			trayManager.SetState(running, paused)
			icons.update(status.Phase, running)
			reminderWindow.Update(status)
		})
		view.Window().SetCloseIntercept(view.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		view.SetOnRender(reminderWindow.Update)
	}

	if autostart {
		timer.Start()
	}
	view.Follow(work.Subscribe(8))
	view.Follow(lookAway.Subscribe(8))
	view.Run(settings.RefreshInterval)
	view.Refresh()
	view.Show()

	logger.WithFields(logrus.Fields{
		"work":      settings.WorkConfig().Span(),
		"look_away": settings.LookAwayConfig().Span(),
		"config":    configPath,
	}).Info("started")
	fyneApp.Run()
	logger.Info("stopped")
	return nil
}

func applySettings(timer *cycle.Cycle, senders *senderSet, idle cycle.IdleChecker, settings preferences.Settings, logger *logrus.Logger) {
	if err := timer.Work().UpdateConfig(settings.WorkConfig()); err != nil {
		logger.WithError(err).Warn("work settings rejected")
	}
	if err := timer.LookAway().UpdateConfig(settings.LookAwayConfig()); err != nil {
		logger.WithError(err).Warn("look-away settings rejected")
	}

	timer.StopIdleWatch()
	if settings.IdleResetEnabled {
		timer.WatchIdle(idle, settings.IdleConfig())
	}

	senders.apply(settings)
	logger.Info("settings applied")
}

// trayIcons switches the tray icon only when the phase or run state changes.
type trayIcons struct {
	app     desktop.App
	current fyne.Resource
}

func newTrayIcons(app desktop.App) *trayIcons {
	icons := &trayIcons{app: app}
	icons.set(resources.MustLogo(resources.IconPaused))
	return icons
}

func (icons *trayIcons) update(phase cycle.Phase, running bool) {
	icons.set(resources.MustLogo(iconName(phase, running)))
}

func (icons *trayIcons) set(icon fyne.Resource) {
	if icon == icons.current {
		return
	}
	icons.current = icon
	icons.app.SetSystemTrayIcon(icon)
}

func iconName(phase cycle.Phase, running bool) string {
	switch {
	case !running:
		return resources.IconPaused
	case phase == cycle.PhaseLookAway:
		return resources.IconLookAway
	}
	return resources.IconActive
}
