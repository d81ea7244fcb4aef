package statusbar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	defaultStyle  = lipgloss.NewStyle().Background(lipgloss.Color("8"))
	infoIconStyle = defaultStyle.Foreground(lipgloss.Color("14"))
	textStyle     = defaultStyle.Foreground(lipgloss.Color("15"))
	warnStyle     = defaultStyle.Foreground(lipgloss.Color("11"))
	flashStyle    = defaultStyle.Foreground(lipgloss.Color("11")).Bold(true)
	separator     = defaultStyle.Foreground(lipgloss.Color("7")).Render(" | ")
	spacer        = textStyle.Render(" ")
)

const (
	renderInterval = 500 * time.Millisecond
	flashDuration  = 3 * time.Second
)

type label struct {
	icon string
	text string
}

func (l label) render(iconStyle lipgloss.Style) string {
	return fmt.Sprintf("%s%s", iconStyle.Render(l.icon), textStyle.Render(" "+l.text))
}

func (s *StatusBar) StartEventLoop() {
	s.eng.OnCompletion(s.notifier.NotifyCompleted)
	s.logger.Debug("status bar event loop started")

	go s.eventLoop()
}

func (s *StatusBar) eventLoop() {
	sigCh := getSignalChannel()
	ticker := time.NewTicker(renderInterval)

	var flashUntil time.Time
	s.renderStatusBar(s.renderParams(false))
	for {
		select {
		case <-s.eng.Updates():
		case <-s.notifier.completions():
			flashUntil = time.Now().Add(flashDuration)
		case <-ticker.C:
			// Timer tick, don't need to do anything except re-render
		case <-sigCh:
			// Resize event, don't need to do anything except re-render
		}

		s.renderStatusBar(s.renderParams(time.Now().Before(flashUntil)))
	}
}
