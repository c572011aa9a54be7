package timerview

import (
	"testing"
	"time"

	"lookaway/internal/core/cycle"
	"lookaway/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	status  cycle.Status
	toggles int
}

func (source *fakeSource) Status() cycle.Status {
	return source.status
}

func (source *fakeSource) Toggle() {
	source.toggles++
	source.status.Work.Running = !source.status.Work.Running
}

func workStatus(display string, progress float64, running bool) cycle.Status {
	return cycle.Status{
		Phase: cycle.PhaseWork,
		Title: display + " · work",
		Work: timekeeper.Snapshot{
			Name:         "work",
			Running:      running,
			Remaining:    10 * time.Minute,
			MaxRemaining: 10 * time.Minute,
			Progress:     progress,
			Display:      display,
		},
		LookAway: timekeeper.Snapshot{Name: "look away", Display: "00:15"},
	}
}

func TestRenderWorkPhase(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	source := &fakeSource{status: workStatus("07:30", 0.25, true)}
	view := New(app, source)

	assert.Equal(t, "07:30 · work", view.Window().Title())
	assert.Equal(t, "Work", view.phase.Text)
	assert.Equal(t, "07:30", view.displayButton.Text)
	assert.Equal(t, 0.25, view.progress.Value)
}

func TestRenderLookAwayPaused(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	source := &fakeSource{status: cycle.Status{
		Phase:    cycle.PhaseLookAway,
		Title:    "00:09 · look away",
		Work:     timekeeper.Snapshot{Display: "10:00"},
		LookAway: timekeeper.Snapshot{Paused: true, Display: "00:09", Progress: 0.4},
	}}
	view := New(app, source)

	assert.Equal(t, "Look away (paused)", view.phase.Text)
	assert.Equal(t, "00:09", view.displayButton.Text)
	assert.Equal(t, 0.4, view.progress.Value)
}

func TestDisplayClickToggles(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	source := &fakeSource{status: workStatus("10:00", 0, false)}
	view := New(app, source)
	require.Equal(t, "Work (stopped)", view.phase.Text)

	test.Tap(view.displayButton)

	assert.Equal(t, 1, source.toggles)
	assert.Equal(t, "Work", view.phase.Text)
}

func TestOnRenderReceivesStatus(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	source := &fakeSource{status: workStatus("05:00", 0.5, true)}
	view := New(app, source)
	var rendered []cycle.Status
	view.SetOnRender(func(status cycle.Status) { rendered = append(rendered, status) })

	view.Refresh()

	require.Len(t, rendered, 1)
	assert.Equal(t, source.status, rendered[0])
}

func TestStopIsIdempotent(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, &fakeSource{status: workStatus("10:00", 0, false)})
	view.Run(time.Hour)
	view.Stop()
	assert.NotPanics(t, view.Stop)
}

func TestFollowRefreshesOnStateChanges(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(app, &fakeSource{status: workStatus("10:00", 0, true)})
	rendered := make(chan cycle.Status, 4)
	view.SetOnRender(func(status cycle.Status) { rendered <- status })

	events := make(chan timekeeper.Event, 4)
	events <- timekeeper.Event{Type: timekeeper.EventTick}
	events <- timekeeper.Event{Type: timekeeper.EventComplete}
	close(events)
	view.Follow(events)

	select {
	case status := <-rendered:
		assert.Equal(t, "10:00 · work", status.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("view not refreshed on completion")
	}
	select {
	case <-rendered:
		t.Fatal("tick events must not trigger a refresh")
	case <-time.After(50 * time.Millisecond):
	}
}
