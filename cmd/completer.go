package cmd

import (
	"strings"

	"github.com/aschey/go-prompt"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/mode"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

const stopwatchArgText = "stopwatch"
const stopwatchArgDescription = "Count up from zero"
const countdownArgText = "countdown"
const countdownArgDescription = "Count down from the target"

func (state *cmdState) completer(in prompt.Document, returnChan chan []prompt.Suggest) {
	before := strings.Split(in.TextBeforeCursor(), " ")
	if state.mode.Current() == mode.SetMode {
		state.completerSetTime(in, returnChan)
	} else if len(before) > 1 {
		state.completerCmd(in, before, returnChan)
	} else {
		state.completerDefault(in, returnChan)
	}
}

func (state *cmdState) completerSetTime(in prompt.Document, returnChan chan []prompt.Suggest) {
	snap := state.eng.Snapshot()
	current := snap.ElapsedMs
	description := "Current elapsed time"
	if snap.Mode == engine.Countdown {
		current = snap.TargetMs
		description = "Current target"
	}

	suggestions := []prompt.Suggest{
		{Text: timefmt.Format(current), Description: description},
	}
	returnChan <- prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
}

func (state *cmdState) completerCmd(in prompt.Document, before []string, returnChan chan []prompt.Suggest) {
	first := before[0]
	switch first {
	case modeCmdText:
		suggestions := []prompt.Suggest{
			{Text: stopwatchArgText, Description: stopwatchArgDescription},
			{Text: countdownArgText, Description: countdownArgDescription},
		}
		returnChan <- prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
	case setCmdText:
		state.completerSetTime(in, returnChan)
	default:
		returnChan <- []prompt.Suggest{}
	}
}

func (state *cmdState) completerDefault(in prompt.Document, returnChan chan []prompt.Suggest) {
	cmds := []prompt.Suggest{
		{Text: startCmdText, Description: startDescription},
		{Text: pauseCmdText, Description: pauseDescription},
		{Text: resetCmdText, Description: resetDescription},
		{Text: modeCmdText, Description: modeDescription, Placeholder: modeExampleText},
		{Text: setCmdText, Description: setDescription, Placeholder: setExampleText},
		{Text: stateCmdText, Description: stateDescription},
		{Text: "q", Description: "Quit interactive prompt"},
	}

	returnChan <- prompt.FilterHasPrefix(cmds, in.GetWordBeforeCursor(), true)
}
