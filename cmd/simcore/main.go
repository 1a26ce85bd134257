// Command simcore is the daemon that owns a running hexsim engine: it
// loads the manifest and config, runs the fixed-tick pipeline on a
// ticker, and fans out its output to the snapshot store and the
// websocket event hub.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "simcore",
		Short: "hexsim simulation core daemon",
		Long: `simcore runs the hex-sector space-economy simulation: ships, stations,
asteroid fields, and construction sites advancing on a fixed tick, with
their state fanned out over a local websocket hub and periodically
snapshotted to sqlite.`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: search ./config.yaml, ./configs, /etc/hexsim)")

	root.AddCommand(newRunCommand(&configPath))
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print simcore's version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("simcore v0.1.0")
		},
	}
}
