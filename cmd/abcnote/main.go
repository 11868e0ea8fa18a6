package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/kutil/util"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		util.Exit(1)
	}
	util.Exit(0)
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logPath string

	rootCmd := &cobra.Command{
		Use:          "abcnote",
		Short:        "Turn ABC music notation into frequencies and durations",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath != "" {
				commonlog.Configure(verbose, &logPath)
			} else {
				commonlog.Configure(verbose, nil)
			}
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more (repeat for debug output)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write the log to this file instead of stderr")

	rootCmd.AddCommand(newNotesCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newTransposeCmd())

	return rootCmd
}
