package clock

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/wire"
)

// command is a control call posted onto the fallback loop. It reuses the
// wire command vocabulary without the serialization.
type command struct {
	typ    wire.CommandType
	fromMs int64
}

// Ticker is the fallback clock: a goroutine in the controlling process
// driven by a periodic ticker. Same contract as Worker, lower accuracy when
// the process is under load. It is selected when the worker process cannot
// be started or faults, and is never swapped back out.
type Ticker struct {
	commands  chan command
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
	logger    *zap.Logger
}

// NewTicker creates a fallback clock and starts its loop.
func NewTicker(logger *zap.Logger) *Ticker {
	t := &Ticker{
		commands: make(chan command, 8),
		events:   make(chan Event, eventBufferSize),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go t.loop()
	return t
}

func (t *Ticker) StartFrom(ms int64) {
	t.post(command{typ: wire.CmdStart, fromMs: ms})
}

func (t *Ticker) Pause() {
	t.post(command{typ: wire.CmdPause})
}

func (t *Ticker) Reset() {
	t.post(command{typ: wire.CmdReset})
}

func (t *Ticker) QueryState() {
	t.post(command{typ: wire.CmdQueryState})
}

// Events returns the channel the loop reports on. Closed by Close.
func (t *Ticker) Events() <-chan Event {
	return t.events
}

// Close stops the loop. Safe to call more than once.
func (t *Ticker) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
	})
	return nil
}

func (t *Ticker) post(cmd command) {
	select {
	case t.commands <- cmd:
	case <-t.done:
		t.logger.Warn("control call after close", zap.Stringer("command", cmd.typ))
	}
}

func (t *Ticker) loop() {
	defer close(t.events)

	var (
		clock  timebase
		ticker *time.Ticker
		tickCh <-chan time.Time
	)
	stopTicking := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickCh = nil
		}
	}
	defer stopTicking()

	t.emit(Event{Kind: KindReady})

	for {
		select {
		case <-t.done:
			return
		case cmd := <-t.commands:
			switch cmd.typ {
			case wire.CmdStart:
				if !clock.start(cmd.fromMs) {
					continue
				}
				ticker = time.NewTicker(Interval)
				tickCh = ticker.C
				t.emit(Event{Kind: KindStarted, ElapsedMs: cmd.fromMs})
			case wire.CmdPause:
				if !clock.pause() {
					continue
				}
				stopTicking()
				t.emit(Event{Kind: KindPaused, ElapsedMs: clock.elapsed()})
			case wire.CmdReset:
				clock.reset()
				stopTicking()
				t.emit(Event{Kind: KindReset})
			case wire.CmdQueryState:
				t.emit(Event{Kind: KindState, ElapsedMs: clock.elapsed(), Running: clock.running})
			}
		case <-tickCh:
			// Ticks are refresh hints; drop them when the buffer is full.
			select {
			case t.events <- Event{Kind: KindTick, ElapsedMs: clock.elapsed()}:
			default:
			}
		}
	}
}

func (t *Ticker) emit(evt Event) {
	select {
	case t.events <- evt:
	case <-t.done:
	}
}
