// Package ui is the full-screen timer frontend.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/prefs"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

const (
	frameInterval = time.Second / 60
	flashDuration = 750 * time.Millisecond
)

type (
	frameMsg      time.Time
	updateMsg     struct{}
	completionMsg struct{}
	flashDoneMsg  struct{}
)

type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Mode   key.Binding
	Edit   key.Binding
	Theme  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" "),
		key.WithHelp("space", "start/pause")),
	Reset: key.NewBinding(key.WithKeys("r"),
		key.WithHelp("r", "reset")),
	Mode: key.NewBinding(key.WithKeys("m"),
		key.WithHelp("m", "switch mode")),
	Edit: key.NewBinding(key.WithKeys("e"),
		key.WithHelp("e", "edit time")),
	Theme: key.NewBinding(key.WithKeys("t"),
		key.WithHelp("t", "theme")),
	Help: key.NewBinding(key.WithKeys("?"),
		key.WithHelp("?", "help")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Mode, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Mode},
		{k.Edit, k.Theme, k.Quit},
	}
}

var (
	pickerItemStyle     = lipgloss.NewStyle().PaddingLeft(4)
	pickerSelectedStyle = lipgloss.NewStyle().PaddingLeft(2)
)

type themeItem struct {
	theme Theme
}

func (i themeItem) FilterValue() string { return i.theme.Name }

type themeDelegate struct{}

func (d themeDelegate) Height() int                               { return 1 }
func (d themeDelegate) Spacing() int                              { return 0 }
func (d themeDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d themeDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(themeItem)
	if !ok {
		return
	}

	swatch := lipgloss.NewStyle().Foreground(i.theme.Accent).Render("●")
	str := fmt.Sprintf("%s %s", swatch, i.theme.Name)

	if index == m.Index() {
		fmt.Fprint(w, pickerSelectedStyle.Render("▶ "+str))
		return
	}
	fmt.Fprint(w, pickerItemStyle.Render(str))
}

type model struct {
	eng    *engine.Engine
	store  *prefs.Manager
	logger *zap.Logger

	keys   keyMap
	help   help.Model
	input  textinput.Model
	picker list.Model
	bar    progress.Model

	theme  Theme
	styles styles
	snap   engine.Snapshot

	width    int
	height   int
	focused  bool
	ticking  bool
	editing  bool
	picking  bool
	flashing bool
	editErr  error
}

func newModel(eng *engine.Engine, store *prefs.Manager, logger *zap.Logger) model {
	theme := ThemeByName(store.Current().Theme)

	input := textinput.New()
	input.Placeholder = "00:05:00.00"
	input.CharLimit = 11
	input.Width = 14

	items := make([]list.Item, 0, len(themes))
	for _, t := range Themes() {
		items = append(items, themeItem{theme: t})
	}
	picker := list.New(items, themeDelegate{}, 28, len(items)+4)
	picker.Title = "Theme"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)

	m := model{
		eng:     eng,
		store:   store,
		logger:  logger,
		keys:    keys,
		help:    help.New(),
		input:   input,
		picker:  picker,
		theme:   theme,
		styles:  newStyles(theme),
		snap:    eng.Snapshot(),
		focused: true,
	}
	m.bar = m.newBar()
	return m
}

func (m model) newBar() progress.Model {
	bar := progress.New(
		progress.WithGradient(m.theme.GradA, m.theme.GradB),
		progress.WithoutPercentage(),
	)
	if m.width > 0 {
		bar.Width = barWidth(m.width)
	}
	return bar
}

func barWidth(width int) int {
	w := width - 10
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (m model) Init() tea.Cmd {
	return waitForUpdate(m.eng)
}

// waitForUpdate delivers the next engine transition as a message.
func waitForUpdate(eng *engine.Engine) tea.Cmd {
	return func() tea.Msg {
		<-eng.Updates()
		return updateMsg{}
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ringBell sounds the terminal bell; the byte never shows in the rendered
// view.
func ringBell() tea.Msg {
	fmt.Print("\a")
	return nil
}

// scheduleFrames starts the frame loop when the timer is running and the
// terminal is focused. At most one frame message is ever in flight.
func (m model) scheduleFrames() (model, tea.Cmd) {
	if m.ticking || !m.focused || m.snap.State != engine.Running {
		return m, nil
	}
	m.ticking = true
	return m, frameTick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		// One immediate re-sync and render on regaining visibility.
		m.eng.Refresh()
		m.snap = m.eng.Snapshot()
		return m.scheduleFrames()

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case frameMsg:
		m.snap = m.eng.Snapshot()
		if !m.focused || m.snap.State != engine.Running {
			m.ticking = false
			return m, nil
		}
		return m, frameTick()

	case updateMsg:
		m.snap = m.eng.Snapshot()
		var cmd tea.Cmd
		m, cmd = m.scheduleFrames()
		return m, tea.Batch(cmd, waitForUpdate(m.eng))

	case completionMsg:
		m.snap = m.eng.Snapshot()
		m.flashing = true
		return m, tea.Batch(
			ringBell,
			tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} }),
		)

	case flashDoneMsg:
		m.flashing = false
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	default:
		return m, nil
	}
}

func (m model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picking {
		return m.updatePicker(msg)
	}
	if m.editing {
		return m.updateEditor(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Toggle):
		if m.snap.State == engine.Running {
			m.eng.Pause()
		} else {
			m.eng.Start()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.eng.Reset()
		m.snap = m.eng.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Mode):
		next := engine.Countdown
		if m.snap.Mode == engine.Countdown {
			next = engine.Stopwatch
		}
		m.eng.SetMode(next)
		m.snap = m.eng.Snapshot()
		if err := m.store.SetMode(next.String()); err != nil {
			m.logger.Warn("failed to save mode", zap.Error(err))
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.editErr = nil
		m.input.SetValue(timefmt.Format(m.editableMs()))
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Theme):
		m.picking = true
		for i, t := range Themes() {
			if t.Name == m.theme.Name {
				m.picker.Select(i)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// editableMs is the field the edit box targets: the countdown target or the
// stopwatch elapsed value.
func (m model) editableMs() int64 {
	if m.snap.Mode == engine.Countdown {
		return m.snap.TargetMs
	}
	return m.snap.ElapsedMs
}

func (m model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitEdit()
	case tea.KeyEsc:
		m.editing = false
		m.editErr = nil
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) submitEdit() (tea.Model, tea.Cmd) {
	ms, err := timefmt.Parse(m.input.Value())
	if err != nil {
		m.editErr = err
		return m, nil
	}

	if m.snap.Mode == engine.Countdown {
		err = m.eng.EditTarget(ms)
	} else {
		err = m.eng.EditElapsed(ms)
	}
	if err != nil {
		m.editErr = err
		return m, nil
	}

	if m.snap.Mode == engine.Countdown {
		if err := m.store.SetTargetMs(ms); err != nil {
			m.logger.Warn("failed to save target", zap.Error(err))
		}
	}
	m.editing = false
	m.editErr = nil
	m.input.Blur()
	m.snap = m.eng.Snapshot()
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if item, ok := m.picker.SelectedItem().(themeItem); ok {
			m = m.applyTheme(item.theme)
		}
		m.picking = false
		return m, nil
	case tea.KeyEsc:
		m.picking = false
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m model) applyTheme(t Theme) model {
	m.theme = t
	m.styles = newStyles(t)
	m.bar = m.newBar()
	if err := m.store.SetTheme(t.Name); err != nil {
		m.logger.Warn("failed to save theme", zap.Error(err))
	}
	return m
}

func (m model) View() string {
	if m.width == 0 {
		return ""
	}

	sections := []string{m.viewClock(), m.viewStatus()}
	if m.snap.Mode == engine.Countdown {
		sections = append(sections, m.viewBar())
	}
	if m.snap.Degraded {
		sections = append(sections, m.styles.dim.Render("fallback clock"))
	}
	switch {
	case m.editing:
		sections = append(sections, m.viewEditor())
	case m.picking:
		sections = append(sections, m.styles.overlay.Render(m.picker.View()))
	}
	sections = append(sections, m.styles.dim.Render(m.help.View(m.keys)))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) viewClock() string {
	style := m.styles.clock
	if m.flashing {
		style = m.styles.flash
	}
	return style.Render(timefmt.Format(m.snap.DisplayMs))
}

func (m model) viewStatus() string {
	mode := m.styles.mode.Render(strings.ToUpper(m.snap.Mode.String()))
	state := m.styles.state.Render(stateLabel(m.snap.State))
	return fmt.Sprintf("%s %s %s", mode, m.styles.dim.Render("·"), state)
}

func stateLabel(s engine.State) string {
	switch s {
	case engine.Running:
		return "▶ running"
	case engine.Paused:
		return "❚❚ paused"
	case engine.Completed:
		return "✔ done"
	default:
		return "■ ready"
	}
}

func (m model) viewBar() string {
	if m.snap.TargetMs <= 0 {
		return ""
	}
	return m.bar.ViewAs(float64(m.snap.RemainingMs) / float64(m.snap.TargetMs))
}

func (m model) viewEditor() string {
	body := m.input.View()
	if m.editErr != nil {
		body = lipgloss.JoinVertical(lipgloss.Left,
			body,
			m.styles.errText.Render("✗ "+m.editErr.Error()))
	}
	return m.styles.overlay.Render(body)
}

// Run starts the full-screen timer and blocks until the user quits.
func Run(eng *engine.Engine, store *prefs.Manager, logger *zap.Logger) error {
	p := tea.NewProgram(newModel(eng, store, logger), tea.WithAltScreen(), tea.WithReportFocus())
	eng.OnCompletion(func() { p.Send(completionMsg{}) })
	_, err := p.Run()
	return err
}
