package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skinwatch/internal/core/model"
	"skinwatch/internal/core/timekeeper"
	"skinwatch/internal/logfields"
	"skinwatch/internal/platform"
	"skinwatch/internal/storage"
	"skinwatch/internal/ui/animation"
	"skinwatch/internal/ui/overlay"
	"skinwatch/internal/ui/tray"
	"skinwatch/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName     = "skinwatch"
	appID       = "io.github.skinwatch"
	eventBuffer = 8
)

// RunCmd implements the default 'run' command.
type RunCmd struct {
	Settings     string        `arg:"" optional:"" name:"settings-file" help:"Settings file" default:"skinwatch.yaml"`
	TickInterval time.Duration `help:"Interval between watch ticks" default:"16ms" env:"SKINWATCH_TICK_INTERVAL"`
	Seed         int64         `help:"Seed for skin animations; 0 seeds from the clock" env:"SKINWATCH_SEED"`
}

func (r *RunCmd) Run(global *Global) error {
	logger := global.logger()

	settings, config, err := loadWatchConfig(r.Settings)
	if err != nil {
		return err
	}
	skins, err := overlaySkins(settings)
	if err != nil {
		return err
	}

	guard, err := platform.AcquireSingleInstance(r.Settings)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store := storage.NewSaveStore(settings.SaveDataPath(), logger)
	keeper := timekeeper.New(config, initialState(store, config), timekeeper.Options{Logger: logger})
	driver := timekeeper.NewDriver(keeper, timekeeper.DriverConfig{TickInterval: r.TickInterval})

	seed := r.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.Icon())

	face := overlay.New(fyneApp, overlay.Config{
		Title:  appName,
		Size:   fyne.NewSize(settings.WindowSize.Width, settings.WindowSize.Height),
		Skins:  skins,
		Source: animation.NewSource(seed),
	}, driver.Press)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, driver.Press)
		desktopApp.SetSystemTrayIcon(resources.Icon())
	} else {
		logger.Info("System tray unsupported on this platform")
	}

	events := driver.Subscribe(eventBuffer)
	go present(events, face, trayManager, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		select {
		case <-ctx.Done():
			driver.Press(model.ButtonQuit)
		case <-driver.Done():
		}
	}()
	go func() {
		<-driver.Done()
		fyne.Do(fyneApp.Quit)
	}()

	initial := driver.Snapshot()
	face.Render(initial, 0)
	if trayManager != nil {
		trayManager.SetMode(initial.Mode)
		trayManager.SetStatus(statusText(initial.Display()))
	}
	logger.Info("Watch started",
		logfields.Path(r.Settings),
		logfields.Mode(string(initial.Mode)),
		logfields.Skin(skins[initial.SkinID].Name),
		logfields.SkinID(initial.SkinID))

	face.Show()
	driver.Start()
	fyneApp.Run()
	driver.Stop()

	if err := store.Save(recordOf(driver.SaveState())); err != nil {
		logger.Error("Failed to write save file", logfields.Path(store.Path()), logfields.Error(err))
		return err
	}
	return nil
}

// present renders driver events on the fyne goroutine. Animation time is
// taken from the tick timestamps.
func present(events <-chan timekeeper.Event, face *overlay.Window, trayManager *tray.Manager, logger *slog.Logger) {
	var last time.Time
	for event := range events {
		switch event.Type {
		case timekeeper.EventModeChanged:
			logger.Debug("Mode changed", logfields.Mode(string(event.Snapshot.Mode)))
			continue
		case timekeeper.EventSkinChanged:
			logger.Debug("Skin changed", logfields.SkinID(event.Snapshot.SkinID))
			continue
		case timekeeper.EventQuit:
			logger.Info("Quit requested")
			continue
		}

		var dt float32
		if !last.IsZero() {
			dt = float32(event.At.Sub(last).Seconds())
		}
		last = event.At

		snapshot := event.Snapshot
		fyne.Do(func() {
			face.Render(snapshot, dt)
			if trayManager != nil {
				trayManager.SetMode(snapshot.Mode)
				trayManager.SetStatus(statusText(snapshot.Display()))
			}
		})
	}
}

// overlaySkins converts the settings skins into window skins keyed by id.
func overlaySkins(settings storage.Settings) (map[uint64]overlay.Skin, error) {
	byID := settings.SkinsByID()
	skins := make(map[uint64]overlay.Skin, len(byID))
	for id, skin := range byID {
		foreground, background, err := skin.Colors()
		if err != nil {
			return nil, err
		}
		look := overlay.Skin{Name: skin.Name, Foreground: foreground, Background: background}
		if skin.Animation != nil {
			look.Animation = &animation.Config{
				Frames:      append([]string(nil), skin.Animation.Frames...),
				FPS:         skin.Animation.FPS,
				Probability: skin.Animation.Probability,
			}
		}
		skins[id] = look
	}
	return skins, nil
}

// statusText is the tray status line; it changes at most once a second.
func statusText(t model.WatchTime) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
