package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/siimplelab/minimal-timer/internal"
	"github.com/siimplelab/minimal-timer/internal/clock"
	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/prefs"
	"github.com/siimplelab/minimal-timer/internal/statusbar"
	"github.com/siimplelab/minimal-timer/internal/ui"
)

var title1 = "█▀▄▀█ █ █▄░█ █ █▀▄▀█ ▄▀█ █░░   ▀█▀ █ █▀▄▀█ █▀▀ █▀█"
var title2 = "█░▀░█ █ █░▀█ █ █░▀░█ █▀█ █▄▄   ░█░ █ █░▀░█ ██▄ █▀▄"

var title = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	PaddingLeft(1).
	PaddingRight(1).
	Render(title1 + "\n" + title2)

const logName = "minimal-timer.log"
const workerLogName = "minimal-timer-worker.log"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:  "minimal-timer",
	Long: title,

	Run: func(cmd *cobra.Command, args []string) {
		interactive, err := cmd.Flags().GetBool("interactive")
		if err != nil {
			fmt.Println(err)
			return
		}
		if interactive {
			statusBar := GetStatusBar(cmd)
			state := GetState(cmd)
			statusBar.StartEventLoop()
			state.curPrompt.Run()
			handleExit()
		} else {
			if err := ui.Run(GetEngine(cmd), GetPrefs(cmd), GetLogger(cmd)); err != nil {
				fmt.Println(err)
			}
		}
	},
}

func handleExit() {
	rawModeOff := exec.Command("/bin/stty", "-raw", "echo")
	rawModeOff.Stdin = os.Stdin
	err := rawModeOff.Run()
	if err != nil {
		fmt.Println(err)
	}
}

var cmdCtx context.Context

func register(logger *zap.Logger, eng *engine.Engine, state *cmdState,
	store *prefs.Manager, statusBar *statusbar.StatusBar) {
	ctx := RegisterLogger(context.Background(), logger)
	ctx = RegisterEngine(ctx, eng)
	ctx = RegisterState(ctx, state)
	ctx = RegisterPrefs(ctx, store)
	ctx = RegisterStatusBar(ctx, statusBar)
	cmdCtx = ctx
}

func newFileLogger(name string) *zap.Logger {
	dir, err := os.Executable()
	if err != nil {
		panic(err)
	}
	fullpath := filepath.Join(filepath.Dir(dir), name)
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{
		fullpath,
	}
	logger, _ := cfg.Build()
	return logger
}

func NewLogger() *zap.Logger {
	return newFileLogger(logName)
}

func newEngine(lifecycle fx.Lifecycle, store *prefs.Manager, logger *zap.Logger) *engine.Engine {
	saved := store.Current()
	savedMode, err := engine.ParseMode(saved.Mode)
	if err != nil {
		logger.Warn("ignoring unknown saved mode", zap.String("mode", saved.Mode))
	}
	eng := engine.New(engine.Config{Mode: savedMode, TargetMs: saved.TargetMs}, logger)

	lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return eng.Close()
		},
	})
	return eng
}

func Execute() {
	// The worker subcommand must not build the fx graph: constructing the
	// engine spawns a worker child, and each child would spawn another.
	if len(os.Args) > 1 && os.Args[1] == clock.WorkerCommandName {
		runWorkerProcess()
		return
	}

	app := fx.New(
		fx.Invoke(register),
		fx.Provide(NewLogger),
		fx.Provide(prefs.NewManager),
		fx.Provide(newEngine),
		fx.Provide(NewState),
		fx.Provide(statusbar.NewStatusChan),
		fx.Provide(statusbar.NewCompletionNotifier),
		fx.Provide(statusbar.NewStatusBar),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	cobra.CheckErr(rootCmd.ExecuteContext(cmdCtx))

	if err := app.Stop(ctx); err != nil {
		fmt.Println(err)
	}
}

func init() {
	usageFunc := rootCmd.UsageFunc()
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		internal.FormatUsage(c, usageFunc, "")
		return nil
	})

	rootCmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		internal.FormatHelp(c)
	})

	rootCmd.Flags().BoolP("interactive", "i", false, "Run in interactive mode")
}
