package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/prefs"
	"github.com/siimplelab/minimal-timer/internal/statusbar"
)

type Dependency int

const (
	loggerKey Dependency = iota
	engineKey
	stateKey
	prefsKey
	statusBarKey
)

func GetLogger(cmd *cobra.Command) *zap.Logger {
	ctx := cmd.Context()
	return ctx.Value(loggerKey).(*zap.Logger)
}

func RegisterLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetEngine(cmd *cobra.Command) *engine.Engine {
	ctx := cmd.Context()
	return ctx.Value(engineKey).(*engine.Engine)
}

func RegisterEngine(ctx context.Context, eng *engine.Engine) context.Context {
	return context.WithValue(ctx, engineKey, eng)
}

func GetState(cmd *cobra.Command) *cmdState {
	ctx := cmd.Context()
	return ctx.Value(stateKey).(*cmdState)
}

func RegisterState(ctx context.Context, state *cmdState) context.Context {
	return context.WithValue(ctx, stateKey, state)
}

func GetPrefs(cmd *cobra.Command) *prefs.Manager {
	ctx := cmd.Context()
	return ctx.Value(prefsKey).(*prefs.Manager)
}

func RegisterPrefs(ctx context.Context, store *prefs.Manager) context.Context {
	return context.WithValue(ctx, prefsKey, store)
}

func GetStatusBar(cmd *cobra.Command) *statusbar.StatusBar {
	ctx := cmd.Context()
	return ctx.Value(statusBarKey).(*statusbar.StatusBar)
}

func RegisterStatusBar(ctx context.Context, statusBar *statusbar.StatusBar) context.Context {
	return context.WithValue(ctx, statusBarKey, statusBar)
}
