package main

import (
	"errors"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"

	"pomobar/internal/config"
	"pomobar/internal/core/model"
	"pomobar/internal/core/session"
	"pomobar/internal/i18n"
	"pomobar/internal/log"
	"pomobar/internal/notify"
	"pomobar/internal/platform"
	"pomobar/internal/sound"
	"pomobar/internal/storage"
	"pomobar/internal/ui/overlay"
	"pomobar/internal/ui/preferences"
	"pomobar/internal/ui/tray"
	"pomobar/resources"
)

func main() {
	cfg := config.Get()
	log.Setup(cfg.LogLevel, cfg.IsDevelopment())
	logger := log.Logger("main")
	logger.Info().Str("lang", i18n.Detect(cfg.Lang)).Msg("starting")

	guard, err := platform.AcquireSingleInstance(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if err := platform.ActivateRunning(config.AppName); err != nil {
				logger.Warn().Err(err).Msg("activate running instance")
			}
		}
		logger.Info().Err(err).Msg("another instance is running, exiting")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store, soundDir := openStore(cfg)

	fyneApp := app.NewWithID(config.AppID)
	fyneApp.SetIcon(resources.MustIcon(resources.RunningIcon))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logger.Error().Msg("system tray unsupported on this platform")
		return
	}

	player := sound.NewPlayer(soundDir, log.Logger("sound"))
	dispatcher := notify.New(fyneApp, player, log.Logger("notify"))

	controller := session.New(store, session.NewSystemClock(fyne.Do), dispatcher, session.Config{
		TickInterval: time.Second,
		Logger:       log.Logger("session"),
	})

	prefsWindow := preferences.New(fyneApp, preferences.LoadSettings(store, controller.Snapshot().WorkDuration), preferences.Callbacks{
		OnWorkMinutes: controller.SetWorkDuration,
		OnBreakMinutes: func(minutes int) {
			if err := preferences.SaveBreakMinutes(store, minutes); err != nil {
				logger.Warn().Err(err).Msg("save break duration")
			}
		},
	})

	completionWindow := overlay.New(fyneApp, controller.Start)

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnStart:          controller.Start,
		OnPause:          controller.Pause,
		OnReset:          controller.Reset,
		OnAdjustDuration: prefsWindow.Show,
		OnSelectSound: func(selected model.Sound) {
			controller.SelectSound(selected.String())
		},
		OnQuit: fyneApp.Quit,
	}, tray.Options{
		Title:       config.AppName,
		IdleIcon:    resources.MustIcon(resources.IdleIcon),
		RunningIcon: resources.MustIcon(resources.RunningIcon),
		SetTitle: func(title string) {
			systray.SetTitle(title)
			systray.SetTooltip(config.AppName + " " + title)
		},
	})

	controller.Subscribe(trayManager.HandleEvent)
	controller.Subscribe(completionWindow.HandleEvent)
	controller.Subscribe(func(event session.Event) {
		if event.Type == session.EventDurationChange {
			prefsWindow.SetWorkMinutes(event.Snapshot.WorkDuration / 60)
		}
	})

	desktopApp.SetSystemTrayMenu(trayManager.Menu())
	desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IdleIcon))

	fyneApp.Lifecycle().SetOnStarted(func() {
		trayManager.Render(controller.Snapshot())
		// A second launch brings the settings of this one forward.
		guard.Serve(func() {
			fyne.Do(func() {
				trayManager.Render(controller.Snapshot())
				prefsWindow.Show()
			})
		})
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		if err := controller.Shutdown(); err != nil {
			logger.Warn().Err(err).Msg("save remaining time")
			return
		}
		logger.Info().Int("remaining", controller.Snapshot().Remaining).Msg("remaining time saved")
	})

	fyneApp.Run()
}

// openStore opens the YAML settings store. Any failure falls back to
// defaults: an unreadable file gives an empty store, a missing config
// directory gives an in-memory one.
func openStore(cfg *config.Config) (storage.Store, string) {
	logger := log.Logger("storage")

	configDir, err := platform.ConfigDir(cfg.ConfigDir)
	if err != nil {
		logger.Warn().Err(err).Msg("settings will not persist")
		return storage.NewMemoryStore(), ""
	}

	path := storage.SettingsPath(configDir, config.AppName)
	store, err := storage.OpenYAMLStore(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("settings unreadable, using defaults")
	}
	return store, filepath.Join(configDir, config.AppName, "sounds")
}
