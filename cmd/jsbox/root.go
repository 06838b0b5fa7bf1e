package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "jsbox [file]",
	Short: "Embedded JavaScript engine with host-function bridging",
	Long: `jsbox - Run JavaScript through an embedded engine.

Run code from files, inline strings, or stdin. The default backend is
the in-process engine; --sandbox switches to the wasm-isolated QuickJS
backend where code runs with zero default capabilities.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun, // Default to run command behavior
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	addRunFlags(rootCmd)
}

func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
