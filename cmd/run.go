package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathan-fiscaletti/consolesize-go"
	"github.com/spf13/cobra"
	"github.com/superhawk610/bar"

	"github.com/siimplelab/minimal-timer/internal"
	"github.com/siimplelab/minimal-timer/internal/engine"
	"github.com/siimplelab/minimal-timer/internal/timefmt"
)

const runDescription = "Runs a one-shot countdown and exits when it completes"
const runCmdText = "run"
const runExampleText = "<duration>"

// parseRunDuration accepts either the clock display format or a Go duration
// string ("1m30s").
func parseRunDuration(arg string) (int64, error) {
	if ms, err := timefmt.Parse(arg); err == nil {
		return ms, nil
	}

	d, err := time.ParseDuration(arg)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid duration", arg)
	}
	ms := d.Milliseconds()
	if ms <= 0 || ms > timefmt.MaxParseableMs {
		return 0, fmt.Errorf("duration out of range: %s", arg)
	}
	return ms, nil
}

func newRunBar() *bar.Bar {
	size, _ := consolesize.GetConsoleSize()
	width := size / 3
	if width < 10 {
		width = 30
	}

	return bar.NewWithOpts(
		bar.WithDimensions(1000, width),
		bar.WithFormat(
			fmt.Sprintf("Counting down... %s %s | %s",
				lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(":bar"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(":percent"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Render(":remaining"))))
}

func updateRunBar(b *bar.Bar, snap engine.Snapshot) {
	progress := 0
	if snap.TargetMs > 0 {
		progress = int(snap.ElapsedMs * 1000 / snap.TargetMs)
	}
	b.Update(progress, bar.Context{bar.Ctx("remaining", timefmt.Format(snap.RemainingMs))})
}

func runCountdown(eng *engine.Engine, targetMs int64) error {
	eng.SetMode(engine.Countdown)
	if err := eng.EditTarget(targetMs); err != nil {
		return err
	}

	done := make(chan struct{}, 1)
	eng.OnCompletion(func() {
		select {
		case done <- struct{}{}:
		default:
		}
	})

	b := newRunBar()
	eng.Start()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			updateRunBar(b, eng.Snapshot())
		case <-done:
			updateRunBar(b, eng.Snapshot())
			fmt.Print("\a")
			fmt.Println()
			fmt.Println("Done!")
			return nil
		}
	}
}

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   fmt.Sprintf("%s %s", runCmdText, runExampleText),
		Short: runDescription,
		Long:  runDescription,

		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			targetMs, err := parseRunDuration(args[0])
			if err != nil {
				fmt.Println(err)
				return
			}
			if err := runCountdown(GetEngine(cmd), targetMs); err != nil {
				fmt.Println(err)
			}
		},
	}
	usageFunc := runCmd.UsageFunc()
	runCmd.SetUsageFunc(func(c *cobra.Command) error {
		internal.FormatUsage(c, usageFunc, runExampleText)
		return nil
	})
	runCmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		internal.FormatHelp(c)
	})

	return runCmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}
