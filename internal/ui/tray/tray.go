package tray

import (
	"fyne.io/fyne/v2"

	"pomobar/internal/core/model"
	"pomobar/internal/core/session"
	"pomobar/internal/i18n"
)

// Host is the tray surface. desktop.App satisfies it.
type Host interface {
	SetSystemTrayMenu(*fyne.Menu)
	SetSystemTrayIcon(fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart          func()
	OnPause          func()
	OnReset          func()
	OnAdjustDuration func()
	OnSelectSound    func(model.Sound)
	OnQuit           func()
}

// Options configures the tray appearance.
type Options struct {
	Title       string
	IdleIcon    fyne.Resource
	RunningIcon fyne.Resource
	// SetTitle renders the countdown text next to the tray icon.
	SetTitle func(string)
}

// Manager projects the session snapshot into the tray title and menu.
type Manager struct {
	host      Host
	callbacks Callbacks
	options   Options

	menu          *fyne.Menu
	startItem     *fyne.MenuItem
	pauseItem     *fyne.MenuItem
	resetItem     *fyne.MenuItem
	durationLabel *fyne.MenuItem
	adjustItem    *fyne.MenuItem
	soundLabel    *fyne.MenuItem
	soundItem     *fyne.MenuItem
	soundItems    map[model.Sound]*fyne.MenuItem

	title    string
	rendered bool
	running  bool
	view     menuView
}

type menuView struct {
	running       bool
	durationLabel string
	sound         model.Sound
}

// New creates a tray manager and installs its menu on host.
func New(host Host, callbacks Callbacks, options Options) *Manager {
	if options.Title == "" {
		options.Title = "Pomobar"
	}
	manager := &Manager{
		host:       host,
		callbacks:  callbacks,
		options:    options,
		soundItems: make(map[model.Sound]*fyne.MenuItem),
	}

	manager.startItem = fyne.NewMenuItem(i18n.T("Start"), func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})
	manager.pauseItem = fyne.NewMenuItem(i18n.T("Pause"), func() {
		if manager.callbacks.OnPause != nil {
			manager.callbacks.OnPause()
		}
	})
	manager.resetItem = fyne.NewMenuItem(i18n.T("Reset"), func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})

	manager.durationLabel = fyne.NewMenuItem("", nil)
	manager.durationLabel.Disabled = true
	manager.adjustItem = fyne.NewMenuItem(i18n.T("Adjust duration…"), func() {
		if manager.callbacks.OnAdjustDuration != nil {
			manager.callbacks.OnAdjustDuration()
		}
	})

	manager.soundLabel = fyne.NewMenuItem(i18n.T("Notification sound:"), nil)
	manager.soundLabel.Disabled = true

	soundMenu := fyne.NewMenu("")
	for _, sound := range model.Sounds() {
		sound := sound
		item := fyne.NewMenuItem(soundTitle(sound), func() {
			if manager.callbacks.OnSelectSound != nil {
				manager.callbacks.OnSelectSound(sound)
			}
		})
		manager.soundItems[sound] = item
		soundMenu.Items = append(soundMenu.Items, item)
	}
	manager.soundItem = fyne.NewMenuItem("", nil)
	manager.soundItem.ChildMenu = soundMenu

	quit := fyne.NewMenuItem(i18n.T("Quit"), func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(options.Title,
		manager.startItem,
		manager.pauseItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.durationLabel,
		manager.adjustItem,
		fyne.NewMenuItemSeparator(),
		manager.soundLabel,
		manager.soundItem,
		fyne.NewMenuItemSeparator(),
		quit,
	)

	return manager
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Title returns the last rendered countdown text.
func (manager *Manager) Title() string {
	return manager.title
}

// HandleEvent renders the snapshot carried by a controller event.
func (manager *Manager) HandleEvent(event session.Event) {
	manager.Render(event.Snapshot)
}

// Render updates the title on every call and the menu only when something
// visible in it changed.
func (manager *Manager) Render(snapshot session.Snapshot) {
	manager.title = FormatTitle(snapshot.Remaining)
	if manager.options.SetTitle != nil {
		manager.options.SetTitle(manager.title)
	}

	view := menuView{
		running:       snapshot.Running(),
		durationLabel: WorkDurationLabel(snapshot.WorkDuration),
		sound:         snapshot.Sound,
	}
	if manager.rendered && view == manager.view {
		return
	}

	if !manager.rendered || view.running != manager.view.running {
		manager.refreshIcon(view.running)
	}

	manager.startItem.Disabled = view.running
	manager.pauseItem.Disabled = !view.running
	manager.durationLabel.Label = view.durationLabel
	for sound, item := range manager.soundItems {
		item.Checked = sound == view.sound
	}
	manager.soundItem.Label = soundTitle(view.sound)

	manager.view = view
	manager.rendered = true
	manager.refreshMenu()
}

func (manager *Manager) refreshIcon(running bool) {
	icon := manager.options.IdleIcon
	if running && manager.options.RunningIcon != nil {
		icon = manager.options.RunningIcon
	}
	if icon != nil && manager.host != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func soundTitle(sound model.Sound) string {
	if sound == model.SoundOff {
		return i18n.T("Off")
	}
	return sound.String()
}
