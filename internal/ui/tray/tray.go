package tray

import (
	"fmt"

	"skinwatch/internal/core/model"

	"fyne.io/fyne/v2"
)

const menuTitle = "skinwatch"

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager keeps the system tray menu in step with the watch.
type Manager struct {
	host     MenuHost
	onButton func(model.Button)

	statusItem    *fyne.MenuItem
	switchItem    *fyne.MenuItem
	startStopItem *fyne.MenuItem
	resetItem     *fyne.MenuItem
	quitItem      *fyne.MenuItem

	mode        model.WatchMode
	statusLabel string
}

// New creates a tray manager. onButton receives the menu actions as watch
// buttons.
func New(host MenuHost, onButton func(model.Button)) *Manager {
	manager := &Manager{
		host:        host,
		onButton:    onButton,
		statusLabel: "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.switchItem = fyne.NewMenuItem("", manager.action(model.ButtonSwitch))
	manager.startStopItem = fyne.NewMenuItem("", manager.action(model.ButtonStartStop))
	manager.resetItem = fyne.NewMenuItem("Reset stopwatch", manager.action(model.ButtonReset))
	manager.quitItem = fyne.NewMenuItem("Quit", manager.action(model.ButtonQuit))

	manager.SetMode(model.ModeClock)
	return manager
}

// Menu returns the menu currently installed.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.switchItem,
		manager.startStopItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

// SetStatus updates the status line, typically with the displayed time.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
	manager.refreshMenu()
}

// SetMode updates labels and enabled items for mode.
func (manager *Manager) SetMode(mode model.WatchMode) {
	if mode == manager.mode {
		return
	}
	manager.mode = mode

	switch mode {
	case model.ModeStopwatchRunning:
		manager.switchItem.Label = "Show clock"
		manager.startStopItem.Label = "Stop"
		manager.startStopItem.Disabled = false
		manager.resetItem.Disabled = false
	case model.ModeStopwatchStopped:
		manager.switchItem.Label = "Show clock"
		manager.startStopItem.Label = "Start"
		manager.startStopItem.Disabled = false
		manager.resetItem.Disabled = false
	default:
		manager.switchItem.Label = "Show stopwatch"
		manager.startStopItem.Label = "Start"
		manager.startStopItem.Disabled = true
		manager.resetItem.Disabled = true
	}
	manager.refreshStatus()
	manager.refreshMenu()
}

func (manager *Manager) action(button model.Button) func() {
	return func() {
		if manager.onButton != nil {
			manager.onButton(button)
		}
	}
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("%s: %s", modeTitle(manager.mode), manager.statusLabel)
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func modeTitle(mode model.WatchMode) string {
	switch mode {
	case model.ModeStopwatchRunning:
		return "Stopwatch (running)"
	case model.ModeStopwatchStopped:
		return "Stopwatch"
	}
	return "Clock"
}
