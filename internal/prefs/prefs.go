// Package prefs persists user preferences as a YAML file in the platform
// config directory.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

const (
	dirName  = "minimal-timer"
	fileName = "config.yaml"
)

// Prefs are the persisted preferences. Missing or invalid fields fall back
// to defaults at load time.
type Prefs struct {
	Mode     string `yaml:"mode"`
	TargetMs int64  `yaml:"target_ms"`
	Theme    string `yaml:"theme"`
}

// Default returns the preferences used before the user has saved any.
func Default() Prefs {
	return Prefs{
		Mode:     engine.Stopwatch.String(),
		TargetMs: engine.DefaultTargetMs,
		Theme:    "charm",
	}
}

func (p Prefs) normalized() Prefs {
	def := Default()
	if _, err := engine.ParseMode(p.Mode); err != nil || p.Mode == "" {
		p.Mode = def.Mode
	}
	if p.TargetMs <= 0 || p.TargetMs > timefmt.MaxParseableMs {
		p.TargetMs = def.TargetMs
	}
	if p.Theme == "" {
		p.Theme = def.Theme
	}
	return p
}

// Manager loads and persists preferences at a fixed path.
type Manager struct {
	path  string
	prefs Prefs
}

// NewManager loads preferences from the platform config directory, creating
// the file with defaults when it is absent or unreadable.
func NewManager() (*Manager, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return NewManagerAt(filepath.Join(dir, dirName, fileName))
}

// NewManagerAt is NewManager with an explicit file path.
func NewManagerAt(path string) (*Manager, error) {
	m := &Manager{path: path}
	if err := m.load(); err != nil {
		m.prefs = Default()
		if err := m.Save(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return err
	}

	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}
	m.prefs = p.normalized()
	return nil
}

// Save writes the current preferences to disk, replacing the file in one
// rename so a crash never leaves it half-written.
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

// Current returns the loaded preferences.
func (m *Manager) Current() Prefs {
	return m.prefs
}

// SetMode persists the startup mode.
func (m *Manager) SetMode(mode string) error {
	m.prefs.Mode = mode
	return m.Save()
}

// SetTargetMs persists the countdown target.
func (m *Manager) SetTargetMs(ms int64) error {
	m.prefs.TargetMs = ms
	return m.Save()
}

// SetTheme persists the display theme.
func (m *Manager) SetTheme(theme string) error {
	m.prefs.Theme = theme
	return m.Save()
}
