package statusbar

import (
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/engine"
)

type StatusBar struct {
	statusChan StatusChan
	eng        *engine.Engine
	notifier   *CompletionNotifier
	logger     *zap.Logger
}

func NewStatusBar(statusChan StatusChan, eng *engine.Engine, notifier *CompletionNotifier, logger *zap.Logger) *StatusBar {
	return &StatusBar{
		statusChan: statusChan,
		eng:        eng,
		notifier:   notifier,
		logger:     logger,
	}
}

type StatusChan chan string

func NewStatusChan() StatusChan {
	return make(StatusChan, 128)
}
