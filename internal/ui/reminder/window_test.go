package reminder

import (
	"testing"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func lookAwayStatus(display string) cycle.Status {
	return cycle.Status{
		Phase:    cycle.PhaseLookAway,
		LookAway: timekeeper.Snapshot{Running: true, Display: display},
	}
}

func TestShownDuringLookAway(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	reminder := New(app, 200)

	reminder.Update(lookAwayStatus("00:14"))
	assert.True(t, reminder.Visible())
	assert.Equal(t, "00:14", reminder.timerLabel.Text)

	reminder.Update(lookAwayStatus("00:13"))
	assert.Equal(t, "00:13", reminder.timerLabel.Text)

	reminder.Update(cycle.Status{Phase: cycle.PhaseWork, Work: timekeeper.Snapshot{Running: true}})
	assert.False(t, reminder.Visible())
}

func TestHiddenWhenLookAwayPaused(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	reminder := New(app, 200)

	reminder.Update(lookAwayStatus("00:10"))
	reminder.Update(cycle.Status{Phase: cycle.PhaseLookAway, LookAway: timekeeper.Snapshot{Paused: true}})
	assert.False(t, reminder.Visible())
}

func TestDisabledStaysHidden(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	reminder := New(app, 200)

	reminder.Update(lookAwayStatus("00:10"))
	reminder.SetEnabled(false)
	assert.False(t, reminder.Visible())

	reminder.Update(lookAwayStatus("00:09"))
	assert.False(t, reminder.Visible())
}

func TestSkip(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()
	reminder := New(app, 200)

	skipped := 0
	reminder.SetOnSkip(func() { skipped++ })
	test.Tap(reminder.skipButton)
	assert.Equal(t, 1, skipped)
}

func TestOpacityToAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), OpacityToAlpha(-1))
	assert.Equal(t, uint8(255), OpacityToAlpha(2))
	assert.Equal(t, uint8(216), OpacityToAlpha(0.85))
}
