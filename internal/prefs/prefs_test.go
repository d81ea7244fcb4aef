package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MarvinJWendt/testza"

	"github.com/siimplelab/minimal-timer/internal/engine"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "config.yaml")
}

func TestManagerCreatesDefaults(t *testing.T) {
	path := testPath(t)

	m, err := NewManagerAt(path)
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, Default(), m.Current())

	_, err = os.Stat(path)
	testza.AssertNoError(t, err)
}

func TestManagerRoundTrip(t *testing.T) {
	path := testPath(t)

	m, err := NewManagerAt(path)
	testza.AssertNoError(t, err)
	testza.AssertNoError(t, m.SetMode(engine.Countdown.String()))
	testza.AssertNoError(t, m.SetTargetMs(65000))
	testza.AssertNoError(t, m.SetTheme("matrix"))

	reopened, err := NewManagerAt(path)
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, Prefs{
		Mode:     "countdown",
		TargetMs: 65000,
		Theme:    "matrix",
	}, reopened.Current())
}

func TestManagerNormalizesInvalidFields(t *testing.T) {
	path := testPath(t)
	testza.AssertNoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	testza.AssertNoError(t, os.WriteFile(path, []byte("mode: warp\ntarget_ms: -5\ntheme: matrix\n"), 0644))

	m, err := NewManagerAt(path)
	testza.AssertNoError(t, err)

	p := m.Current()
	testza.AssertEqual(t, Default().Mode, p.Mode)
	testza.AssertEqual(t, Default().TargetMs, p.TargetMs)
	testza.AssertEqual(t, "matrix", p.Theme)
}

func TestManagerReplacesCorruptFile(t *testing.T) {
	path := testPath(t)
	testza.AssertNoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	testza.AssertNoError(t, os.WriteFile(path, []byte("{{{ not yaml"), 0644))

	m, err := NewManagerAt(path)
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, Default(), m.Current())

	reopened, err := NewManagerAt(path)
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, Default(), reopened.Current())
}

func TestDefaultIsUsable(t *testing.T) {
	def := Default()

	mode, err := engine.ParseMode(def.Mode)
	testza.AssertNoError(t, err)
	testza.AssertEqual(t, engine.Stopwatch, mode)
	testza.AssertTrue(t, def.TargetMs > 0)
	testza.AssertTrue(t, def.Theme != "")
}
