package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	g := &globalFlags{}

	var rootCmd = &cobra.Command{
		Use:   "cutpath",
		Short: "cutpath - cutting path editor",
		Long: `cutpath edits the point/edge layout of a cutting job in the terminal,
asks the backend for an optimized traversal and plays it back segment by
segment.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.register(rootCmd)

	edit := newEditCommand(g)
	rootCmd.RunE = edit.RunE

	rootCmd.AddCommand(edit)
	rootCmd.AddCommand(newOptimizeCommand(g))
	rootCmd.AddCommand(newGraphCommand(g))
	rootCmd.AddCommand(newClearCommand(g))
	rootCmd.AddCommand(newExampleCommand(g))
	rootCmd.AddCommand(newImportCommand(g))

	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}
