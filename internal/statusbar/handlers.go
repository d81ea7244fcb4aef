package statusbar

import (
	"github.com/siimplelab/minimal-timer/internal/engine"
)

const (
	runningIcon   = ""
	pausedIcon    = ""
	stoppedIcon   = ""
	completedIcon = ""
	stopwatchIcon = ""
	countdownIcon = ""
	degradedIcon  = ""
)

type timerStatus struct {
	icon  string
	color string
	label string
}

func handleSnapshot(snap engine.Snapshot) timerStatus {
	switch snap.State {
	case engine.Running:
		return timerStatus{icon: runningIcon, color: "14", label: "Running"}
	case engine.Paused:
		return timerStatus{icon: pausedIcon, color: "11", label: "Paused"}
	case engine.Completed:
		return timerStatus{icon: completedIcon, color: "10", label: "Done"}
	default:
		return timerStatus{icon: stoppedIcon, color: "9", label: "Ready"}
	}
}

func modeIcon(m engine.Mode) string {
	if m == engine.Countdown {
		return countdownIcon
	}
	return stopwatchIcon
}

func modeLabel(m engine.Mode) string {
	if m == engine.Countdown {
		return "Countdown"
	}
	return "Stopwatch"
}
