package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"pomobar/internal/i18n"
)

func TestWorkSliderForwardsChanges(t *testing.T) {
	app := test.NewTempApp(t)
	var changes []int
	prefs := New(app, DefaultSettings(), Callbacks{
		OnWorkMinutes: func(minutes int) {
			changes = append(changes, minutes)
		},
	})

	prefs.handleWorkMinutes(45)
	prefs.handleWorkMinutes(45)
	prefs.handleWorkMinutes(120)

	assert.Equal(t, []int{45, 90}, changes)
	assert.Equal(t, 90, prefs.Settings().WorkMinutes)
	assert.Equal(t, "Work duration: 1h 30m", prefs.workLabel.Text)
}

func TestSetWorkMinutesDoesNotFireCallback(t *testing.T) {
	app := test.NewTempApp(t)
	fired := false
	prefs := New(app, DefaultSettings(), Callbacks{
		OnWorkMinutes: func(int) { fired = true },
	})

	prefs.SetWorkMinutes(15)

	assert.False(t, fired)
	assert.Equal(t, 15.0, prefs.workSlider.Value)
	assert.Equal(t, "Work duration: 15 min", prefs.workLabel.Text)
}

func TestBreakSliderForwardsChanges(t *testing.T) {
	app := test.NewTempApp(t)
	var changes []int
	prefs := New(app, DefaultSettings(), Callbacks{
		OnBreakMinutes: func(minutes int) {
			changes = append(changes, minutes)
		},
	})

	prefs.handleBreakMinutes(10)

	assert.Equal(t, []int{10}, changes)
	assert.Equal(t, "Break duration: 10 min", prefs.breakLabel.Text)
}

func TestLabelsAreTranslated(t *testing.T) {
	i18n.SetLang("ru")
	defer i18n.SetLang("en")

	app := test.NewTempApp(t)
	prefs := New(app, DefaultSettings(), Callbacks{})

	assert.Equal(t, "Изменения сохраняются автоматически.", prefs.footnote.Text)
	assert.Equal(t, "Длительность перерыва: 5 мин", prefs.breakLabel.Text)
}
