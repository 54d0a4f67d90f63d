package preferences

import (
	"fmt"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomobar/internal/core/model"
	"pomobar/internal/i18n"
	"pomobar/internal/ui/tray"
)

// Callbacks receive changes as the user makes them.
type Callbacks struct {
	OnWorkMinutes  func(int)
	OnBreakMinutes func(int)
}

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	callbacks   Callbacks
	workLabel   *widget.Label
	workSlider  *widget.Slider
	breakLabel  *widget.Label
	breakSlider *widget.Slider
	footnote    *widget.Label
}

// New creates a preferences window. It starts hidden.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow(i18n.T("Pomodoro Settings"))

	prefs := &Window{
		window:    window,
		settings:  settings,
		callbacks: callbacks,
	}

	prefs.workLabel = widget.NewLabel(workLabelText(settings.WorkMinutes))
	prefs.workSlider = widget.NewSlider(model.MinWorkMinutes, model.MaxWorkMinutes)
	prefs.workSlider.Step = 1
	prefs.workSlider.Value = float64(settings.WorkMinutes)
	prefs.workSlider.OnChanged = func(value float64) {
		prefs.handleWorkMinutes(int(math.Round(value)))
	}

	prefs.breakLabel = widget.NewLabel(breakLabelText(settings.BreakMinutes))
	prefs.breakSlider = widget.NewSlider(model.MinBreakMinutes, model.MaxBreakMinutes)
	prefs.breakSlider.Step = 1
	prefs.breakSlider.Value = float64(settings.BreakMinutes)
	prefs.breakSlider.OnChanged = func(value float64) {
		prefs.handleBreakMinutes(int(math.Round(value)))
	}

	prefs.footnote = widget.NewLabelWithStyle(i18n.T("Changes save automatically."), fyne.TextAlignLeading, fyne.TextStyle{Italic: true})

	content := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Pomodoro Settings"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.workLabel,
		prefs.workSlider,
		prefs.breakLabel,
		prefs.breakSlider,
		prefs.footnote,
	)
	window.SetContent(content)
	window.Resize(fyne.NewSize(320, 200))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the values currently shown.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// SetWorkMinutes reflects a duration changed elsewhere without firing callbacks.
func (prefs *Window) SetWorkMinutes(minutes int) {
	minutes = model.ClampWorkMinutes(minutes)
	if minutes == prefs.settings.WorkMinutes {
		return
	}
	prefs.settings.WorkMinutes = minutes
	prefs.workLabel.SetText(workLabelText(minutes))
	prefs.workSlider.Value = float64(minutes)
	prefs.workSlider.Refresh()
}

func (prefs *Window) handleWorkMinutes(minutes int) {
	minutes = model.ClampWorkMinutes(minutes)
	if minutes == prefs.settings.WorkMinutes {
		return
	}
	prefs.settings.WorkMinutes = minutes
	prefs.workLabel.SetText(workLabelText(minutes))
	if prefs.callbacks.OnWorkMinutes != nil {
		prefs.callbacks.OnWorkMinutes(minutes)
	}
}

func (prefs *Window) handleBreakMinutes(minutes int) {
	minutes = model.ClampBreakMinutes(minutes)
	if minutes == prefs.settings.BreakMinutes {
		return
	}
	prefs.settings.BreakMinutes = minutes
	prefs.breakLabel.SetText(breakLabelText(minutes))
	if prefs.callbacks.OnBreakMinutes != nil {
		prefs.callbacks.OnBreakMinutes(minutes)
	}
}

func workLabelText(minutes int) string {
	return tray.WorkDurationLabel(minutes * 60)
}

func breakLabelText(minutes int) string {
	return fmt.Sprintf(i18n.T("Break duration: %d min"), minutes)
}
