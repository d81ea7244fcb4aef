package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathan-fiscaletti/consolesize-go"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

type renderParams struct {
	modeInfo  string
	stateIcon string
	clock     string
	stateText string
	degraded  string
}

func (s *StatusBar) renderParams(flashing bool) renderParams {
	snap := s.eng.Snapshot()
	status := handleSnapshot(snap)
	iconStyle := defaultStyle.Foreground(lipgloss.Color(status.color))

	clock := timefmt.Format(snap.DisplayMs)
	if snap.Mode == engine.Countdown {
		clock = fmt.Sprintf("%s / %s", clock, timefmt.Format(snap.TargetMs))
	}

	stateText := textStyle.Render(status.label)
	if flashing {
		stateText = flashStyle.Render("Time's up!")
	}

	params := renderParams{
		modeInfo:  label{icon: modeIcon(snap.Mode), text: modeLabel(snap.Mode)}.render(infoIconStyle),
		stateIcon: iconStyle.Render(status.icon + " "),
		clock:     textStyle.Render(clock),
		stateText: stateText,
	}
	if snap.Degraded {
		params.degraded = label{icon: degradedIcon, text: "fallback clock"}.render(warnStyle)
	}
	return params
}

func (s *StatusBar) renderStatusBar(params renderParams) {
	size, _ := consolesize.GetConsoleSize()

	paddingWidth := 2
	formattedStatus := ""
	if lipgloss.Width(params.degraded) > 0 {
		middleBar := lipgloss.NewStyle().
			Background(lipgloss.Color("8")).
			Width(size -
				lipgloss.Width(params.modeInfo) -
				lipgloss.Width(params.stateIcon) -
				lipgloss.Width(params.clock) -
				lipgloss.Width(params.stateText) -
				lipgloss.Width(params.degraded) -
				(lipgloss.Width(separator) * 2) -
				paddingWidth).
			Align(lipgloss.Right).
			Render("")

		formattedStatus = lipgloss.JoinHorizontal(lipgloss.Bottom,
			params.modeInfo,
			middleBar,
			params.stateIcon,
			params.clock,
			separator,
			params.stateText,
			separator,
			params.degraded)
	} else {
		middleBar := lipgloss.NewStyle().
			Background(lipgloss.Color("8")).
			Width(size -
				lipgloss.Width(params.modeInfo) -
				lipgloss.Width(params.stateIcon) -
				lipgloss.Width(params.clock) -
				lipgloss.Width(params.stateText) -
				lipgloss.Width(separator) -
				paddingWidth).
			Align(lipgloss.Right).
			Render("")

		formattedStatus = lipgloss.JoinHorizontal(lipgloss.Bottom,
			params.modeInfo,
			middleBar,
			params.stateIcon,
			params.clock,
			separator,
			params.stateText)
	}
	s.statusChan <- lipgloss.JoinHorizontal(lipgloss.Bottom, spacer, formattedStatus, spacer)
}
