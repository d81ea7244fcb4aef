package cmd

import (
	"github.com/aschey/go-prompt"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/mode"
	"github.com/siimplelab/minimal-timer/internal/prefs"
	"github.com/siimplelab/minimal-timer/internal/statusbar"
)

type cmdState struct {
	mode      *mode.Mode
	eng       *engine.Engine
	store     *prefs.Manager
	curPrompt *prompt.Prompt
	logger    *zap.Logger
}

func (state *cmdState) changeLivePrefix() (string, bool) {
	return string(state.mode.Current()), true
}

func promptMode(m engine.Mode) mode.ModeDef {
	if m == engine.Countdown {
		return mode.CountdownMode
	}
	return mode.StopwatchMode
}

func NewState(eng *engine.Engine, store *prefs.Manager, statusChan statusbar.StatusChan, logger *zap.Logger) *cmdState {
	state := cmdState{
		mode:   mode.NewMode(promptMode(eng.Snapshot().Mode)),
		eng:    eng,
		store:  store,
		logger: logger,
	}
	state.curPrompt = prompt.New(
		state.executor,
		state.completer,
		prompt.OptionPrefix(string(state.mode.First())),
		prompt.OptionLivePrefix(state.changeLivePrefix),
		prompt.OptionTitle("Minimal Timer"),
		prompt.OptionCompletionWordSeparator([]string{" "}),
		prompt.OptionShowCompletionAtStart(),
		prompt.OptionCompletionOnDown(),
		prompt.OptionStatusbarSignal(statusChan),
	)

	return &state
}
