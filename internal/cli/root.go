package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/flowedit"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "flowedit",
	Short: "Terminal code editor bound to a remote execution service",
	Long: `flowedit edits C#, Visual Basic, F# and IL against a remote execution
service and overlays recorded execution flow (jump arrows, notes and
exceptions) on the code.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (merged over ~/.flowedit and .flowedit)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(flowCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "flowedit %s\n", flowedit.VersionTag())
	},
}
