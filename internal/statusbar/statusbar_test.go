package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/MarvinJWendt/testza"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/clock"
	"github.com/siimplelab/minimal-timer/internal/engine"
)

func newTestStatusBar(t *testing.T, cfg engine.Config) (*StatusBar, *engine.Engine, StatusChan) {
	t.Helper()

	eng := engine.NewWithSource(clock.NewTicker(zap.NewNop()), cfg, zap.NewNop())
	t.Cleanup(func() { _ = eng.Close() })

	statusChan := NewStatusChan()
	s := NewStatusBar(statusChan, eng, NewCompletionNotifier(), zap.NewNop())
	return s, eng, statusChan
}

func waitForStatus(t *testing.T, statusChan StatusChan, want string) string {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case line := <-statusChan:
			if strings.Contains(line, want) {
				return line
			}
		case <-deadline:
			t.Fatalf("no status line containing %q", want)
			return ""
		}
	}
}

func TestHandleSnapshotStates(t *testing.T) {
	tests := []struct {
		state engine.State
		icon  string
		color string
		label string
	}{
		{engine.Idle, stoppedIcon, "9", "Ready"},
		{engine.Running, runningIcon, "14", "Running"},
		{engine.Paused, pausedIcon, "11", "Paused"},
		{engine.Completed, completedIcon, "10", "Done"},
	}

	for _, tt := range tests {
		status := handleSnapshot(engine.Snapshot{State: tt.state})
		testza.AssertEqual(t, tt.icon, status.icon)
		testza.AssertEqual(t, tt.color, status.color)
		testza.AssertEqual(t, tt.label, status.label)
	}
}

func TestNotifierCoalesces(t *testing.T) {
	n := NewCompletionNotifier()
	n.NotifyCompleted()
	n.NotifyCompleted()
	n.NotifyCompleted()

	select {
	case <-n.completions():
	default:
		t.Fatal("expected a pending completion signal")
	}

	select {
	case <-n.completions():
		t.Fatal("expected repeated completions to collapse into one signal")
	default:
	}
}

func TestRenderParamsStopwatch(t *testing.T) {
	s, _, _ := newTestStatusBar(t, engine.Config{Mode: engine.Stopwatch})

	params := s.renderParams(false)
	testza.AssertContains(t, params.modeInfo, "Stopwatch")
	testza.AssertContains(t, params.clock, "00:00:00.00")
	testza.AssertContains(t, params.stateText, "Ready")
	testza.AssertEqual(t, "", params.degraded)
}

func TestRenderParamsCountdownShowsTarget(t *testing.T) {
	s, _, _ := newTestStatusBar(t, engine.Config{Mode: engine.Countdown, TargetMs: 65000})

	params := s.renderParams(false)
	testza.AssertContains(t, params.modeInfo, "Countdown")
	testza.AssertContains(t, params.clock, "00:01:05.00 / 00:01:05.00")
}

func TestRenderParamsFlashing(t *testing.T) {
	s, _, _ := newTestStatusBar(t, engine.Config{Mode: engine.Countdown, TargetMs: 1000})

	params := s.renderParams(true)
	testza.AssertContains(t, params.stateText, "Time's up!")
}

type faultSource struct {
	events chan clock.Event
}

func newFaultSource() *faultSource {
	return &faultSource{events: make(chan clock.Event, 4)}
}

func (f *faultSource) StartFrom(int64) {}

func (f *faultSource) Pause() {}

func (f *faultSource) Reset() {}

func (f *faultSource) QueryState() {}

func (f *faultSource) Events() <-chan clock.Event { return f.events }

func (f *faultSource) Close() error { return nil }

func TestRenderParamsDegraded(t *testing.T) {
	src := newFaultSource()
	eng := engine.NewWithSource(src, engine.Config{Mode: engine.Stopwatch}, zap.NewNop())
	t.Cleanup(func() { _ = eng.Close() })

	src.events <- clock.Event{Kind: clock.KindFault}
	deadline := time.Now().Add(2 * time.Second)
	for !eng.Snapshot().Degraded {
		if time.Now().After(deadline) {
			t.Fatal("engine never switched to the fallback clock")
		}
		time.Sleep(time.Millisecond)
	}

	s := NewStatusBar(NewStatusChan(), eng, NewCompletionNotifier(), zap.NewNop())
	params := s.renderParams(false)
	testza.AssertContains(t, params.degraded, "fallback clock")
}

func TestRenderStatusBarSendsLine(t *testing.T) {
	s, _, statusChan := newTestStatusBar(t, engine.Config{Mode: engine.Stopwatch})

	s.renderStatusBar(s.renderParams(false))

	line := waitForStatus(t, statusChan, "00:00:00.00")
	testza.AssertContains(t, line, "Stopwatch")
	testza.AssertContains(t, line, "Ready")
}

func TestEventLoopRendersTransitions(t *testing.T) {
	s, eng, statusChan := newTestStatusBar(t, engine.Config{Mode: engine.Stopwatch})

	s.StartEventLoop()
	waitForStatus(t, statusChan, "Ready")

	eng.Start()
	waitForStatus(t, statusChan, "Running")

	eng.Pause()
	waitForStatus(t, statusChan, "Paused")
}
