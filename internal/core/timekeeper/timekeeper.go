package timekeeper

import (
	"log/slog"
	"math"

	"skinwatch/internal/core/model"
	"skinwatch/internal/logfields"

	"github.com/jonboulle/clockwork"
)

// State is the subset of watch state that survives a restart.
type State struct {
	Mode          model.WatchMode
	StopwatchTime model.WatchTime
	SavedTime     float32
}

// Options contains the collaborators of a Keeper.
type Options struct {
	Clock  clockwork.Clock
	Logger *slog.Logger
}

// Snapshot is a read-only view of the Keeper after a tick.
type Snapshot struct {
	Mode          model.WatchMode
	StopwatchTime model.WatchTime
	ClockTime     model.WatchTime
	SavedTime     float32
	SkinID        uint64
	SkinChanged   bool
	QuitRequested bool
}

// Display returns the time shown for the active mode.
func (snapshot Snapshot) Display() model.WatchTime {
	if snapshot.Mode == model.ModeClock {
		return snapshot.ClockTime
	}
	return snapshot.StopwatchTime
}

// Keeper is the clock/stopwatch state machine. It is not safe for
// concurrent use; Driver serializes access when ticking in the background.
type Keeper struct {
	clock  clockwork.Clock
	logger *slog.Logger

	stopwatchSkins model.SkinTable
	clockSkins     model.SkinTable

	mode          model.WatchMode
	stopwatchTime model.WatchTime
	savedTime     float32
	clockTime     model.WatchTime

	skinID        uint64
	skinChanged   bool
	quitRequested bool
}

// New creates a Keeper starting from initial. A restored stopwatch always
// starts stopped; an unknown mode falls back to config.DefaultMode.
func New(config model.WatchConfig, initial State, options Options) *Keeper {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	mode := initial.Mode
	if !mode.Valid() {
		mode = config.DefaultMode
	}
	if !mode.Valid() {
		mode = model.ModeClock
	}

	stopwatchTime := initial.StopwatchTime
	stopwatchTime.Normalize()

	return &Keeper{
		clock:          options.Clock,
		logger:         options.Logger,
		stopwatchSkins: config.Stopwatch,
		clockSkins:     config.Clock,
		mode:           mode.Persisted(),
		stopwatchTime:  stopwatchTime,
		savedTime:      clampCarry(initial.SavedTime),
	}
}

// Init resolves the skin of the initial mode before the first render.
func (keeper *Keeper) Init() {
	keeper.quitRequested = false
	keeper.skinChanged = true

	if keeper.mode == model.ModeClock {
		keeper.sampleClock()
		keeper.skinID = keeper.clockSkins.Resolve(keeper.clockTime)
		return
	}
	keeper.skinID = keeper.stopwatchSkins.Resolve(keeper.stopwatchTime)
}

// Tick advances the state machine by dt seconds, applying at most one
// button event. Ticks after a quit request are ignored.
func (keeper *Keeper) Tick(dt float32, button model.Button) {
	if keeper.quitRequested {
		keeper.skinChanged = false
		return
	}
	if !(dt > 0) || math.IsInf(float64(dt), 1) {
		dt = 0
	}
	keeper.skinChanged = false

	switch keeper.mode {
	case model.ModeClock:
		keeper.tickClock(button)
	case model.ModeStopwatchRunning:
		keeper.tickRunning(dt, button)
	case model.ModeStopwatchStopped:
		keeper.tickStopped(button)
	}
}

func (keeper *Keeper) tickClock(button model.Button) {
	switch button {
	case model.ButtonSwitch:
		keeper.updateStopwatchSkin()
		keeper.setMode(model.ModeStopwatchStopped)
	case model.ButtonQuit:
		keeper.requestQuit()
	default:
		keeper.sampleClock()
		keeper.updateClockSkin()
	}
}

func (keeper *Keeper) tickRunning(dt float32, button model.Button) {
	switch button {
	case model.ButtonSwitch:
		keeper.enterClock()
	case model.ButtonStartStop:
		keeper.updateStopwatchSkin()
		keeper.setMode(model.ModeStopwatchStopped)
	case model.ButtonReset:
		keeper.resetStopwatch()
		keeper.updateStopwatchSkin()
	case model.ButtonQuit:
		keeper.requestQuit()
	default:
		keeper.addStopwatchTime(dt)
		keeper.updateStopwatchSkin()
	}
}

func (keeper *Keeper) tickStopped(button model.Button) {
	switch button {
	case model.ButtonSwitch:
		keeper.enterClock()
	case model.ButtonStartStop:
		keeper.updateStopwatchSkin()
		keeper.setMode(model.ModeStopwatchRunning)
	case model.ButtonReset:
		keeper.resetStopwatch()
		keeper.updateStopwatchSkin()
	case model.ButtonQuit:
		keeper.requestQuit()
	default:
		keeper.updateStopwatchSkin()
	}
}

func (keeper *Keeper) enterClock() {
	keeper.sampleClock()
	keeper.updateClockSkin()
	keeper.setMode(model.ModeClock)
}

// addStopwatchTime truncates to whole centiseconds. savedTime carries the
// fraction of the current second, so cents is overwritten, not added.
func (keeper *Keeper) addStopwatchTime(dt float32) {
	keeper.savedTime = float32(keeper.savedTime + dt)
	keeper.stopwatchTime.Cents = uint32(float32(keeper.savedTime * 100))
	keeper.stopwatchTime.Normalize()
	keeper.savedTime = fract(keeper.savedTime)
}

func (keeper *Keeper) resetStopwatch() {
	keeper.stopwatchTime = model.WatchTime{}
	keeper.savedTime = 0
}

func (keeper *Keeper) sampleClock() {
	keeper.clockTime = model.FromClock(keeper.clock.Now())
}

func (keeper *Keeper) updateStopwatchSkin() {
	keeper.setSkin(keeper.stopwatchSkins.Resolve(keeper.stopwatchTime))
}

func (keeper *Keeper) updateClockSkin() {
	keeper.setSkin(keeper.clockSkins.Resolve(keeper.clockTime))
}

func (keeper *Keeper) setSkin(skinID uint64) {
	if keeper.skinID != skinID {
		keeper.skinChanged = true
		keeper.skinID = skinID
	}
}

func (keeper *Keeper) setMode(mode model.WatchMode) {
	keeper.logger.Debug("watch mode changed",
		logfields.Mode(string(keeper.mode)),
		slog.String("next", string(mode)),
		logfields.SkinID(keeper.skinID))
	keeper.mode = mode
}

func (keeper *Keeper) requestQuit() {
	keeper.quitRequested = true
}

// Mode returns the active mode.
func (keeper *Keeper) Mode() model.WatchMode {
	return keeper.mode
}

// SkinID returns the selected skin.
func (keeper *Keeper) SkinID() uint64 {
	return keeper.skinID
}

// SkinChanged reports whether the last tick selected a different skin.
func (keeper *Keeper) SkinChanged() bool {
	return keeper.skinChanged
}

// QuitRequested reports whether the quit button has been handled.
func (keeper *Keeper) QuitRequested() bool {
	return keeper.quitRequested
}

// Snapshot returns a copy of the observable state.
func (keeper *Keeper) Snapshot() Snapshot {
	return Snapshot{
		Mode:          keeper.mode,
		StopwatchTime: keeper.stopwatchTime,
		ClockTime:     keeper.clockTime,
		SavedTime:     keeper.savedTime,
		SkinID:        keeper.skinID,
		SkinChanged:   keeper.skinChanged,
		QuitRequested: keeper.quitRequested,
	}
}

// SaveState returns the state to persist on shutdown.
func (keeper *Keeper) SaveState() State {
	return State{
		Mode:          keeper.mode,
		StopwatchTime: keeper.stopwatchTime,
		SavedTime:     keeper.savedTime,
	}
}

func fract(value float32) float32 {
	return value - float32(math.Trunc(float64(value)))
}

func clampCarry(value float32) float32 {
	if !(value >= 0) || value >= 1 {
		return 0
	}
	return value
}
