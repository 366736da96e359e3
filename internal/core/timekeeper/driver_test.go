package timekeeper

import (
	"testing"
	"time"

	"skinwatch/internal/core/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDriver(t *testing.T, initial State) (*Driver, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	keeper := New(skinConfig(), initial, Options{Clock: clock})
	driver := NewDriver(keeper, DriverConfig{TickInterval: 10 * time.Millisecond, Clock: clock})
	t.Cleanup(driver.Stop)
	return driver, clock
}

func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestDriverInitResolvesSkin(t *testing.T) {
	driver, _ := newTestDriver(t, State{Mode: model.ModeClock})

	snapshot := driver.Snapshot()
	assert.Equal(t, uint64(100), snapshot.SkinID)
	assert.True(t, snapshot.SkinChanged)
}

func TestDriverTickUsesWallDelta(t *testing.T) {
	driver, clock := newTestDriver(t, State{Mode: model.ModeStopwatchStopped})
	driver.lastTick = clock.Now()

	driver.Press(model.ButtonStartStop)
	clock.Advance(250 * time.Millisecond)
	require.False(t, driver.tick(clock.Now()))
	assert.Equal(t, model.ModeStopwatchRunning, driver.Snapshot().Mode)

	clock.Advance(1250 * time.Millisecond)
	require.False(t, driver.tick(clock.Now()))
	assert.Equal(t, model.WatchTime{Seconds: 1, Cents: 25}, driver.Snapshot().StopwatchTime)
}

func TestDriverFirstPressWins(t *testing.T) {
	driver, clock := newTestDriver(t, State{Mode: model.ModeStopwatchStopped})

	driver.Press(model.ButtonSwitch)
	driver.Press(model.ButtonQuit)
	require.False(t, driver.tick(clock.Now()))
	assert.Equal(t, model.ModeClock, driver.Snapshot().Mode)
	assert.False(t, driver.Snapshot().QuitRequested)

	// the slot is cleared after each tick
	require.False(t, driver.tick(clock.Now()))
	assert.Equal(t, model.ModeClock, driver.Snapshot().Mode)
}

func TestDriverEmitsEvents(t *testing.T) {
	driver, clock := newTestDriver(t, State{Mode: model.ModeStopwatchStopped})
	events := driver.Subscribe(10)

	driver.Press(model.ButtonSwitch)
	require.False(t, driver.tick(clock.Now()))

	got := drain(events)
	require.Len(t, got, 3)
	assert.Equal(t, EventTick, got[0].Type)
	assert.Equal(t, EventModeChanged, got[1].Type)
	assert.Equal(t, EventSkinChanged, got[2].Type)
	assert.Equal(t, uint64(100), got[2].Snapshot.SkinID)

	require.False(t, driver.tick(clock.Now()))
	got = drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventTick, got[0].Type)
}

func TestDriverQuit(t *testing.T) {
	driver, clock := newTestDriver(t, State{Mode: model.ModeClock})
	events := driver.Subscribe(10)

	driver.Press(model.ButtonQuit)
	require.True(t, driver.tick(clock.Now()))

	select {
	case <-driver.Done():
	default:
		t.Fatal("done channel not closed after quit")
	}
	got := drain(events)
	require.NotEmpty(t, got)
	assert.Equal(t, EventQuit, got[len(got)-1].Type)

	// further ticks are ignored
	assert.True(t, driver.tick(clock.Now()))
}

func TestDriverStartStop(t *testing.T) {
	driver, clock := newTestDriver(t, State{Mode: model.ModeStopwatchStopped})
	events := driver.Subscribe(64)
	driver.Press(model.ButtonStartStop)
	driver.Start()

	var tick Event
	require.Eventually(t, func() bool {
		clock.Advance(10 * time.Millisecond)
		for {
			select {
			case event := <-events:
				if event.Type == EventTick {
					tick = event
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, model.ModeStopwatchRunning, tick.Snapshot.Mode)

	driver.Stop()
	driver.Stop()

	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, time.Second, 5*time.Millisecond)

	closed := driver.Subscribe(1)
	_, ok := <-closed
	assert.False(t, ok)
}
