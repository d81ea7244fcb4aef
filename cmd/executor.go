package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/aschey/go-prompt"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/mode"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

const startCmdText = "start"
const startDescription = "Starts or resumes the timer"

const pauseCmdText = "pause"
const pauseDescription = "Pauses the running timer"

const resetCmdText = "reset"
const resetDescription = "Resets the timer to zero"

const modeCmdText = "mode"
const modeDescription = "Switches between stopwatch and countdown"
const modeExampleText = "<stopwatch|countdown>"

const setCmdText = "set"
const setDescription = "Sets the elapsed time or countdown target"
const setExampleText = "<hh:mm:ss.cc>"

const stateCmdText = "state"
const stateDescription = "Prints the current timer state"

func (state *cmdState) executor(in string, selected *prompt.Suggest) {
	if state.mode.Current() == mode.SetMode {
		state.executeSetMode(in)
		return
	}

	cmds := strings.SplitN(strings.Trim(in, " "), " ", 2)
	if len(cmds) == 0 || cmds[0] == "" {
		return
	}

	state.executeCmd(cmds)
}

func (state *cmdState) executeSetMode(in string) {
	text := strings.Trim(in, " ")
	if text == "" {
		state.mode.Reset()
		return
	}
	if err := state.eng.EditTime(text); err != nil {
		fmt.Println(err)
		return
	}
	state.saveEditedTime()
	state.mode.Reset()
}

func (state *cmdState) executeCmd(cmds []string) {
	switch cmds[0] {
	case startCmdText:
		state.eng.Start()
	case pauseCmdText:
		state.eng.Pause()
	case resetCmdText:
		state.eng.Reset()
	case modeCmdText:
		if len(cmds) < 2 || strings.Trim(cmds[1], " ") == "" {
			fmt.Printf("Usage: %s %s\n", modeCmdText, modeExampleText)
			return
		}
		state.runModeSwitch(strings.Trim(cmds[1], " "))
	case setCmdText:
		if len(cmds) < 2 || strings.Trim(cmds[1], " ") == "" {
			fmt.Println("Enter a time as hh:mm:ss.cc.")
			fmt.Println("Enter a blank line to cancel.")
			state.mode.Set(mode.SetMode)
			return
		}
		if err := state.eng.EditTime(strings.Trim(cmds[1], " ")); err != nil {
			fmt.Println(err)
			return
		}
		state.saveEditedTime()
	case stateCmdText:
		fmt.Println(state.renderState())
	case "q":
		fmt.Println("Exiting...")
		handleExit()
		os.Exit(0)
	}
}

func (state *cmdState) runModeSwitch(arg string) {
	m, err := engine.ParseMode(arg)
	if err != nil {
		fmt.Printf("Usage: %s %s\n", modeCmdText, modeExampleText)
		return
	}

	state.eng.SetMode(m)
	if err := state.store.SetMode(m.String()); err != nil {
		state.logger.Warn("failed to save mode", zap.Error(err))
	}
	state.mode = mode.NewMode(promptMode(m))
	fmt.Printf("Mode set to %s\n", m)
}

func (state *cmdState) saveEditedTime() {
	snap := state.eng.Snapshot()
	if snap.Mode == engine.Countdown {
		if err := state.store.SetTargetMs(snap.TargetMs); err != nil {
			state.logger.Warn("failed to save countdown target", zap.Error(err))
		}
		fmt.Printf("Target set to %s\n", timefmt.Format(snap.TargetMs))
		return
	}
	fmt.Printf("Elapsed set to %s\n", timefmt.Format(snap.ElapsedMs))
}

func (state *cmdState) renderState() string {
	snap := state.eng.Snapshot()
	lines := []string{
		fmt.Sprintf("Mode: %s", snap.Mode),
		fmt.Sprintf("State: %s", snap.State),
		fmt.Sprintf("Elapsed: %s", timefmt.Format(snap.ElapsedMs)),
	}
	if snap.Mode == engine.Countdown {
		lines = append(lines,
			fmt.Sprintf("Target: %s", timefmt.Format(snap.TargetMs)),
			fmt.Sprintf("Remaining: %s", timefmt.Format(snap.RemainingMs)))
	}
	if snap.Degraded {
		lines = append(lines, "Clock: fallback")
	}
	return strings.Join(lines, "\n")
}
