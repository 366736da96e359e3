package timekeeper

import (
	"sync"
	"time"

	"skinwatch/internal/core/model"
	"skinwatch/internal/logfields"

	"github.com/jonboulle/clockwork"
)

// DriverConfig contains runtime options for Driver.
type DriverConfig struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
}

// Driver ticks a Keeper in the background and fans out events to observers.
type Driver struct {
	mu       sync.Mutex
	keeper   *Keeper
	config   DriverConfig
	pending  model.Button
	lastTick time.Time
	events   []chan Event
	stopCh   chan struct{}
	quitCh   chan struct{}
	running  bool
	stopped  bool
	quit     bool
}

// NewDriver wraps keeper. Init is called on keeper before the first tick.
func NewDriver(keeper *Keeper, config DriverConfig) *Driver {
	if config.TickInterval <= 0 {
		config.TickInterval = 16 * time.Millisecond
	}
	if config.Clock == nil {
		config.Clock = keeper.clock
	}
	keeper.Init()
	return &Driver{
		keeper: keeper,
		config: config,
		stopCh: make(chan struct{}),
		quitCh: make(chan struct{}),
	}
}

// Done is closed once the keeper has handled a quit request.
func (driver *Driver) Done() <-chan struct{} {
	return driver.quitCh
}

// Press queues a button for the next tick. Only the first press between
// two ticks is kept.
func (driver *Driver) Press(button model.Button) {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	if driver.pending == model.ButtonNone {
		driver.pending = button
	}
}

// Subscribe registers a new observer channel.
func (driver *Driver) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	driver.mu.Lock()
	if driver.stopped {
		close(ch)
	} else {
		driver.events = append(driver.events, ch)
	}
	driver.mu.Unlock()
	return ch
}

// Snapshot returns the current keeper state.
func (driver *Driver) Snapshot() Snapshot {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.keeper.Snapshot()
}

// SaveState returns the state to persist.
func (driver *Driver) SaveState() State {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	return driver.keeper.SaveState()
}

// Start launches the ticking loop.
func (driver *Driver) Start() {
	driver.mu.Lock()
	if driver.running || driver.stopped {
		driver.mu.Unlock()
		return
	}
	driver.running = true
	driver.lastTick = driver.config.Clock.Now()
	driver.mu.Unlock()

	ticker := driver.config.Clock.NewTicker(driver.config.TickInterval)
	go driver.run(ticker)
}

// Stop terminates the ticking loop and closes observers.
func (driver *Driver) Stop() {
	driver.mu.Lock()
	if driver.stopped {
		driver.mu.Unlock()
		return
	}
	driver.stopped = true
	if driver.running {
		close(driver.stopCh)
		driver.running = false
	}
	events := driver.events
	driver.events = nil
	driver.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (driver *Driver) run(ticker clockwork.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-driver.stopCh:
			return
		case tickTime := <-ticker.Chan():
			if driver.tick(tickTime) {
				return
			}
		}
	}
}

// tick advances the keeper once and reports whether quit was requested.
func (driver *Driver) tick(now time.Time) bool {
	driver.mu.Lock()
	defer driver.mu.Unlock()
	if driver.stopped || driver.quit {
		return true
	}

	dt := now.Sub(driver.lastTick)
	if dt < 0 {
		dt = 0
	}
	driver.lastTick = now

	button := driver.pending
	driver.pending = model.ButtonNone
	if button != model.ButtonNone {
		driver.keeper.logger.Debug("button pressed", logfields.Button(button.String()))
	}

	previousMode := driver.keeper.Mode()
	driver.keeper.Tick(float32(dt.Seconds()), button)
	snapshot := driver.keeper.Snapshot()

	driver.emitLocked(Event{Type: EventTick, Snapshot: snapshot, At: now})
	if snapshot.Mode != previousMode {
		driver.emitLocked(Event{Type: EventModeChanged, Snapshot: snapshot, At: now})
	}
	if snapshot.SkinChanged {
		driver.emitLocked(Event{Type: EventSkinChanged, Snapshot: snapshot, At: now})
	}
	if snapshot.QuitRequested {
		driver.emitLocked(Event{Type: EventQuit, Snapshot: snapshot, At: now})
		driver.quit = true
		close(driver.quitCh)
		return true
	}
	return false
}

func (driver *Driver) emitLocked(event Event) {
	for _, ch := range driver.events {
		select {
		case ch <- event:
		default:
		}
	}
}
