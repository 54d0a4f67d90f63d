package overlay

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomobar/internal/core/session"
	"pomobar/internal/i18n"
	"pomobar/internal/notify"
)

// Window is the small window raised when a work session ends, so the user
// notices even when notifications are disabled.
type Window struct {
	window       fyne.Window
	titleLabel   *widget.Label
	messageLabel *widget.Label
	startButton  *widget.Button
	dismiss      *widget.Button
	onStart      func()
	visible      bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the completion window. It starts hidden.
func New(app fyne.App, onStart func()) *Window {
	window := app.NewWindow("Pomobar")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	overlay := &Window{
		window:       window,
		titleLabel:   widget.NewLabelWithStyle(i18n.T(notify.CompletionTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		messageLabel: widget.NewLabelWithStyle(i18n.T(notify.CompletionBody), fyne.TextAlignCenter, fyne.TextStyle{}),
		onStart:      onStart,
	}

	overlay.startButton = widget.NewButton(i18n.T("Start next session"), func() {
		overlay.Hide()
		if overlay.onStart != nil {
			overlay.onStart()
		}
	})
	overlay.startButton.Importance = widget.HighImportance
	overlay.dismiss = widget.NewButton(i18n.T("Dismiss"), overlay.Hide)

	buttons := container.NewHBox(layout.NewSpacer(), overlay.dismiss, overlay.startButton, layout.NewSpacer())
	window.SetContent(container.NewVBox(overlay.titleLabel, overlay.messageLabel, buttons))
	window.SetCloseIntercept(overlay.Hide)
	window.SetFixedSize(true)

	return overlay
}

// HandleEvent shows the window on completion and hides it once a new session starts.
func (overlay *Window) HandleEvent(event session.Event) {
	switch {
	case event.Type == session.EventCompleted:
		overlay.Show()
	case event.Snapshot.Running():
		overlay.Hide()
	}
}

// Show raises the window.
func (overlay *Window) Show() {
	overlay.visible = true
	overlay.window.CenterOnScreen()
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide closes the window.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.window.Hide()
}

// Visible reports whether the window is shown.
func (overlay *Window) Visible() bool {
	return overlay.visible
}
