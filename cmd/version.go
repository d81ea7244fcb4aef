package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siimplelab/minimal-timer/internal"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const versionDescription = "Prints the version"
const versionCmdText = "version"

var versionCmd = &cobra.Command{
	Use:   versionCmdText,
	Short: versionDescription,
	Long:  versionDescription,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("minimal-timer %s\n", version)
	},
}

func init() {
	usageFunc := versionCmd.UsageFunc()
	versionCmd.SetUsageFunc(func(c *cobra.Command) error {
		internal.FormatUsage(c, usageFunc, "")
		return nil
	})
	versionCmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		internal.FormatHelp(c)
	})
	rootCmd.AddCommand(versionCmd)
}
