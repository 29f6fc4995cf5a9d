package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/prompt"
	"github.com/recera/cutpath/pkg/api"
)

func newClearCommand(g *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every point and edge from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			closer, err := g.setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			if !yes && !prompt.New().Confirm("Clear the whole project?", false) {
				dimColor.Println("Cancelled.")
				return nil
			}
			if err := syncer(cfg).Clear(context.Background()); err != nil {
				return fmt.Errorf("clear failed: %s", api.Message(err))
			}
			okColor.Println("✓ Project cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
