package engine

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/clock"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

// Validation errors returned by the edit operations.
var (
	ErrTimerRunning = errors.New("timer is running")
	ErrOutOfRange   = errors.New("time out of range")
	ErrClosed       = errors.New("engine is closed")
)

// Engine is the timer state machine. It owns the session, drives the active
// clock source, and applies state transitions when the source acknowledges
// them; control calls return before their transition lands. Exactly one
// source is active at a time, and a faulted worker is replaced by the
// fallback ticker for the rest of the process lifetime.
type Engine struct {
	mu            sync.Mutex
	sess          session
	source        clock.Source
	degraded      bool
	pendingMode   *Mode
	pendingResets int
	completions   []func()
	updates       chan struct{}
	closed        bool
	loopDone      chan struct{}
	logger        *zap.Logger
}

// New creates an engine on the isolated worker clock, falling back to the
// in-process ticker when the worker cannot be started. The fallback choice
// is permanent and logged, never surfaced as a failure.
func New(cfg Config, logger *zap.Logger) *Engine {
	worker, err := clock.NewWorker(logger)
	if err != nil {
		logger.Warn("isolated clock unavailable, using fallback", zap.Error(err))
		return newEngine(clock.NewTicker(logger), true, cfg, logger)
	}
	return newEngine(worker, false, cfg, logger)
}

// NewWithSource creates an engine on a specific clock source.
func NewWithSource(source clock.Source, cfg Config, logger *zap.Logger) *Engine {
	return newEngine(source, false, cfg, logger)
}

func newEngine(source clock.Source, degraded bool, cfg Config, logger *zap.Logger) *Engine {
	e := &Engine{
		sess: session{
			mode:     cfg.Mode,
			state:    Idle,
			targetMs: cfg.TargetMs,
		},
		source:   source,
		degraded: degraded,
		updates:  make(chan struct{}, 1),
		loopDone: make(chan struct{}),
		logger:   logger,
	}
	if e.sess.mode == Countdown && e.sess.targetMs <= 0 {
		e.sess.targetMs = DefaultTargetMs
	}
	logger.Info("engine started",
		zap.Stringer("mode", e.sess.mode),
		zap.Int64("targetMs", e.sess.targetMs),
		zap.Bool("degraded", degraded))

	go e.run()
	return e
}

// Start begins or resumes the timer from the current elapsed value. No-op
// while already Running; the transition to Running lands when the source
// acknowledges.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.sess.state == Running {
		return
	}
	e.sess.completed = false
	e.source.StartFrom(e.sess.elapsedMs)
}

// Pause stops the timer. No-op unless Running; elapsed freezes at the value
// the source reports in its acknowledgment.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.sess.state != Running {
		return
	}
	e.source.Pause()
}

// Reset returns the session to Idle with zero elapsed, whatever the prior
// state. The session is zeroed immediately; the source acknowledgment
// reconciles silently later, and any acks still in flight ahead of it are
// discarded as stale.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.pendingMode != nil {
		// A mode switch waiting on its pause ack still lands; the reset
		// supersedes the pause it was waiting for.
		m := *e.pendingMode
		e.pendingMode = nil
		e.applyModeLocked(m)
	}
	e.sess.state = Idle
	e.sess.elapsedMs = 0
	e.sess.completed = false
	e.pendingResets++
	e.source.Reset()
	e.notify()
}

// SetMode switches between stopwatch and countdown, zeroing elapsed time.
// A switch while Running pauses first and completes on the pause
// acknowledgment.
func (e *Engine) SetMode(m Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.sess.mode == m {
		return
	}
	if e.sess.state == Running {
		e.pendingMode = &m
		e.source.Pause()
		return
	}
	// Supersedes a switch still waiting on its pause ack, if any.
	e.pendingMode = nil
	e.applyModeLocked(m)
	e.notify()
}

// EditElapsed overwrites the elapsed value. Rejected while Running and for
// values outside the displayable range.
func (e *Engine) EditElapsed(ms int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editElapsedLocked(ms)
}

// EditTarget overwrites the countdown target and zeroes elapsed time.
// Rejected while Running and for non-positive or out-of-range values.
func (e *Engine) EditTarget(ms int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editTargetLocked(ms)
}

// EditTime parses a HH:MM:SS.CC string and applies it to the field the
// current mode displays: the target in Countdown, elapsed in Stopwatch.
func (e *Engine) EditTime(s string) error {
	ms, err := timefmt.Parse(s)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.mode == Countdown {
		return e.editTargetLocked(ms)
	}
	return e.editElapsedLocked(ms)
}

// Snapshot returns a copy of the current session for display.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Mode:      e.sess.mode,
		State:     e.sess.state,
		ElapsedMs: e.sess.elapsedMs,
		TargetMs:  e.sess.targetMs,
		Degraded:  e.degraded,
	}
	if e.sess.mode == Countdown {
		remaining := e.sess.targetMs - e.sess.elapsedMs
		if remaining < 0 {
			remaining = 0
		}
		snap.RemainingMs = remaining
		snap.DisplayMs = remaining
	} else {
		snap.DisplayMs = e.sess.elapsedMs
	}
	return snap
}

// OnCompletion subscribes fn to completion events. Each countdown
// zero-crossing invokes the subscribers exactly once, from the engine's
// event loop.
func (e *Engine) OnCompletion(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completions = append(e.completions, fn)
}

// Updates returns a channel that receives a coalesced signal whenever a
// state transition lands. Consumers read the data through Snapshot.
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

// Refresh asks the active source for a state report, re-syncing elapsed
// time if Running. Used when the display resumes after being hidden.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.source.QueryState()
}

// Close shuts the active source down and stops the event loop.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	source := e.source
	e.mu.Unlock()

	err := source.Close()
	<-e.loopDone
	e.logger.Info("engine stopped")
	return err
}

func (e *Engine) editElapsedLocked(ms int64) error {
	if e.closed {
		return ErrClosed
	}
	if e.sess.state == Running {
		return ErrTimerRunning
	}
	if ms < 0 || ms > timefmt.MaxParseableMs {
		return fmt.Errorf("%w: %dms", ErrOutOfRange, ms)
	}
	e.sess.elapsedMs = ms
	e.notify()
	return nil
}

func (e *Engine) editTargetLocked(ms int64) error {
	if e.closed {
		return ErrClosed
	}
	if e.sess.state == Running {
		return ErrTimerRunning
	}
	if ms <= 0 || ms > timefmt.MaxParseableMs {
		return fmt.Errorf("%w: %dms", ErrOutOfRange, ms)
	}
	e.sess.targetMs = ms
	e.sess.elapsedMs = 0
	e.notify()
	return nil
}

// applyModeLocked performs the mode switch. Lock held, state not Running.
func (e *Engine) applyModeLocked(m Mode) {
	e.sess.mode = m
	e.sess.state = Idle
	e.sess.elapsedMs = 0
	e.sess.completed = false
	if m == Countdown && e.sess.targetMs <= 0 {
		e.sess.targetMs = DefaultTargetMs
	}
}

// notify signals the updates channel without blocking.
func (e *Engine) notify() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}

// run is the event loop: the only goroutine that applies source events to
// the session.
func (e *Engine) run() {
	defer close(e.loopDone)

	for {
		e.mu.Lock()
		events := e.source.Events()
		e.mu.Unlock()

		evt, ok := <-events
		if !ok {
			e.mu.Lock()
			if e.closed {
				e.mu.Unlock()
				return
			}
			// The source died without reporting a fault; treat it as
			// one at the last applied elapsed value.
			e.logger.Warn("clock source closed unexpectedly")
			e.failoverLocked(e.sess.elapsedMs)
			e.mu.Unlock()
			continue
		}
		e.handle(evt)
	}
}

func (e *Engine) handle(evt clock.Event) {
	e.mu.Lock()
	if e.closed {
		// Draining after Close: the source is already torn down, and
		// nothing buffered behind it may touch the session or fail over
		// onto a replacement source no one would close.
		e.mu.Unlock()
		return
	}
	beforeState := e.sess.state
	beforeDegraded := e.degraded
	var fire []func()

	switch {
	case evt.Kind == clock.KindFault:
		e.failoverLocked(evt.ElapsedMs)

	case e.pendingResets > 0:
		// Acks ordered ahead of the reset ack predate the reset and must
		// not revive the run; the session already shows Idle/zero.
		if evt.Kind == clock.KindReset {
			e.pendingResets--
		}

	default:
		switch evt.Kind {
		case clock.KindReady:
			// The source is up; nothing to apply.

		case clock.KindStarted:
			if e.sess.state != Running {
				e.sess.state = Running
				e.sess.elapsedMs = evt.ElapsedMs
				fire = e.completeLocked()
			}

		case clock.KindTick:
			// Authoritative elapsed updates apply only while Running; a
			// tick in flight across a pause is stale.
			if e.sess.state == Running {
				e.sess.elapsedMs = evt.ElapsedMs
				fire = e.completeLocked()
			}

		case clock.KindPaused:
			if e.sess.state == Running {
				e.sess.state = Paused
				e.sess.elapsedMs = evt.ElapsedMs
			}
			if e.pendingMode != nil {
				// The switch lands on its pause ack even when the countdown
				// completed in between and already left Running; it must not
				// linger into a later, unrelated pause.
				m := *e.pendingMode
				e.pendingMode = nil
				e.applyModeLocked(m)
			}

		case clock.KindReset:
			// Reset was applied optimistically when requested.

		case clock.KindState:
			if e.sess.state == Running && evt.Running {
				e.sess.elapsedMs = evt.ElapsedMs
				fire = e.completeLocked()
			}
		}
	}

	changed := e.sess.state != beforeState || e.degraded != beforeDegraded
	e.mu.Unlock()

	if changed {
		e.notify()
	}
	for _, fn := range fire {
		fn()
	}
}

// completeLocked evaluates the countdown zero-crossing and returns the
// callbacks to fire, if any. Lock held.
func (e *Engine) completeLocked() []func() {
	if e.sess.mode != Countdown || e.sess.state != Running || e.sess.completed {
		return nil
	}
	if e.sess.targetMs-e.sess.elapsedMs > 0 {
		return nil
	}

	e.sess.state = Completed
	e.sess.completed = true
	// Clamp the overshoot so remaining time never renders below zero.
	e.sess.elapsedMs = e.sess.targetMs
	e.source.Pause()
	e.logger.Info("countdown completed", zap.Int64("targetMs", e.sess.targetMs))

	fire := make([]func(), len(e.completions))
	copy(fire, e.completions)
	return fire
}

// failoverLocked switches to the fallback clock after a source fault,
// re-establishing an in-flight run from the last known elapsed value.
// Lock held.
func (e *Engine) failoverLocked(lastElapsedMs int64) {
	wasRunning := e.sess.state == Running
	if wasRunning {
		e.sess.state = Paused
		e.sess.elapsedMs = lastElapsedMs
	}

	if err := e.source.Close(); err != nil {
		e.logger.Debug("failed source teardown", zap.Error(err))
	}
	e.source = clock.NewTicker(e.logger)
	e.degraded = true
	e.pendingMode = nil
	e.pendingResets = 0
	e.logger.Warn("clock source faulted, switched to fallback",
		zap.Bool("resuming", wasRunning),
		zap.Int64("elapsedMs", e.sess.elapsedMs))

	if wasRunning {
		e.source.StartFrom(e.sess.elapsedMs)
	}
}
