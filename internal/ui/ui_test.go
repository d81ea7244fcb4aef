package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MarvinJWendt/testza"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/clock"
	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/prefs"
)

func newTestModel(t *testing.T, cfg engine.Config) (model, *engine.Engine, *prefs.Manager) {
	t.Helper()

	eng := engine.NewWithSource(clock.NewTicker(zap.NewNop()), cfg, zap.NewNop())
	t.Cleanup(func() { _ = eng.Close() })

	store, err := prefs.NewManagerAt(filepath.Join(t.TempDir(), "config.yaml"))
	testza.AssertNoError(t, err)

	m := newModel(eng, store, zap.NewNop())
	m.width = 80
	m.height = 24
	return m, eng, store
}

func waitForSnap(t *testing.T, eng *engine.Engine, cond func(engine.Snapshot) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond(eng.Snapshot()) {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for engine state")
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func apply(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(model)
	testza.AssertTrue(t, ok)
	return updated, cmd
}

func TestInitialView(t *testing.T) {
	m, _, _ := newTestModel(t, engine.Config{})

	view := m.View()
	testza.AssertContains(t, view, "00:00:00.00")
	testza.AssertContains(t, view, "STOPWATCH")
	testza.AssertContains(t, view, "ready")
}

func TestToggleKeyStartsAndPauses(t *testing.T) {
	m, eng, _ := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	waitForSnap(t, eng, func(s engine.Snapshot) bool { return s.State == engine.Running })

	m, _ = apply(t, m, updateMsg{})
	testza.AssertEqual(t, engine.Running, m.snap.State)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	waitForSnap(t, eng, func(s engine.Snapshot) bool { return s.State == engine.Paused })
}

func TestResetKeyIsImmediate(t *testing.T) {
	m, eng, _ := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeySpace})
	waitForSnap(t, eng, func(s engine.Snapshot) bool { return s.State == engine.Running })
	m, _ = apply(t, m, updateMsg{})

	m, _ = apply(t, m, keyPress('r'))
	testza.AssertEqual(t, engine.Idle, m.snap.State)
	testza.AssertEqual(t, int64(0), m.snap.ElapsedMs)
}

func TestFrameSchedulingFollowsRunAndFocus(t *testing.T) {
	m, eng, _ := newTestModel(t, engine.Config{})

	// Idle: frames stop.
	m, cmd := apply(t, m, frameMsg(time.Now()))
	testza.AssertFalse(t, m.ticking)
	testza.AssertTrue(t, cmd == nil)

	eng.Start()
	waitForSnap(t, eng, func(s engine.Snapshot) bool { return s.State == engine.Running })

	// A transition schedules the frame loop.
	m, cmd = apply(t, m, updateMsg{})
	testza.AssertTrue(t, m.ticking)
	testza.AssertNotNil(t, cmd)

	// Blurred: the next frame is the last.
	m, _ = apply(t, m, tea.BlurMsg{})
	m, cmd = apply(t, m, frameMsg(time.Now()))
	testza.AssertFalse(t, m.ticking)
	testza.AssertTrue(t, cmd == nil)

	// Focus regained while running resumes frames.
	m, cmd = apply(t, m, tea.FocusMsg{})
	testza.AssertTrue(t, m.ticking)
	testza.AssertNotNil(t, cmd)
}

func TestEditRejectsInvalidInline(t *testing.T) {
	m, eng, _ := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, keyPress('e'))
	testza.AssertTrue(t, m.editing)
	testza.AssertEqual(t, "00:00:00.00", m.input.Value())

	m.input.SetValue("not a time")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	testza.AssertTrue(t, m.editing)
	testza.AssertNotNil(t, m.editErr)
	testza.AssertContains(t, m.View(), "invalid time")
	testza.AssertEqual(t, int64(0), eng.Snapshot().ElapsedMs)

	m.input.SetValue("00:00:02.50")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	testza.AssertFalse(t, m.editing)
	testza.AssertEqual(t, int64(2500), eng.Snapshot().ElapsedMs)
}

func TestEditCountdownSetsTargetAndSaves(t *testing.T) {
	m, eng, store := newTestModel(t, engine.Config{Mode: engine.Countdown, TargetMs: 5000})

	m, _ = apply(t, m, keyPress('e'))
	testza.AssertEqual(t, "00:00:05.00", m.input.Value())

	m.input.SetValue("00:01:05.00")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	testza.AssertFalse(t, m.editing)

	snap := eng.Snapshot()
	testza.AssertEqual(t, int64(65000), snap.TargetMs)
	testza.AssertEqual(t, int64(0), snap.ElapsedMs)
	testza.AssertEqual(t, int64(65000), store.Current().TargetMs)
}

func TestEditEscCancels(t *testing.T) {
	m, eng, _ := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, keyPress('e'))
	m.input.SetValue("00:00:09.00")
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	testza.AssertFalse(t, m.editing)
	testza.AssertEqual(t, int64(0), eng.Snapshot().ElapsedMs)
}

func TestModeKeyTogglesAndPersists(t *testing.T) {
	m, eng, store := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, keyPress('m'))
	testza.AssertEqual(t, engine.Countdown, eng.Snapshot().Mode)
	testza.AssertEqual(t, "countdown", store.Current().Mode)
	testza.AssertContains(t, m.View(), "COUNTDOWN")

	m, _ = apply(t, m, keyPress('m'))
	testza.AssertEqual(t, engine.Stopwatch, eng.Snapshot().Mode)
	testza.AssertEqual(t, "stopwatch", store.Current().Mode)
}

func TestThemePickerAppliesAndSaves(t *testing.T) {
	m, _, store := newTestModel(t, engine.Config{})

	m, _ = apply(t, m, keyPress('t'))
	testza.AssertTrue(t, m.picking)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	testza.AssertFalse(t, m.picking)
	testza.AssertEqual(t, "matrix", m.theme.Name)
	testza.AssertEqual(t, "matrix", store.Current().Theme)
}

func TestCompletionFlash(t *testing.T) {
	m, _, _ := newTestModel(t, engine.Config{Mode: engine.Countdown, TargetMs: 5000})

	m, cmd := apply(t, m, completionMsg{})
	testza.AssertTrue(t, m.flashing)
	testza.AssertNotNil(t, cmd)

	m, _ = apply(t, m, flashDoneMsg{})
	testza.AssertFalse(t, m.flashing)
}

func TestDegradedBadge(t *testing.T) {
	m, _, _ := newTestModel(t, engine.Config{})

	testza.AssertFalse(t, strings.Contains(m.View(), "fallback clock"))
	m.snap.Degraded = true
	testza.AssertContains(t, m.View(), "fallback clock")
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, engine.Config{})

	_, cmd := apply(t, m, keyPress('q'))
	testza.AssertNotNil(t, cmd)
	testza.AssertEqual(t, tea.QuitMsg{}, cmd())
}

func TestDelegateRendersThemes(t *testing.T) {
	items := []list.Item{
		themeItem{theme: themes[0]},
		themeItem{theme: themes[1]},
	}
	d := themeDelegate{}
	l := list.New(items, d, 0, 0)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])
	testza.AssertContains(t, buf.String(), "▶")
	testza.AssertContains(t, buf.String(), "charm")

	buf.Reset()
	d.Render(&buf, l, 1, items[1])
	testza.AssertContains(t, buf.String(), "matrix")
	testza.AssertFalse(t, strings.Contains(buf.String(), "▶"))
}
