package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/ui"
)

func newEditCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor",
		Long: `Opens the terminal editor. Click to place points, drag to move them,
switch to connect mode with tab and click two points to join them.
Right-click deletes a point. Press ? for all keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fi, _ := os.Stdout.Stat(); fi == nil || fi.Mode()&os.ModeCharDevice == 0 {
				return fmt.Errorf("not running in a terminal, use the headless commands instead")
			}

			cfg, err := g.load()
			if err != nil {
				return err
			}
			// The editor owns the screen, so --verbose cannot log to stderr.
			g.verbose = false
			closer, err := g.setupLogging(cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			return ui.Run(ui.Options{
				Syncer:        syncer(cfg),
				Params:        params(cfg),
				CellWidth:     cfg.Canvas.CellWidth,
				CellHeight:    cfg.Canvas.CellHeight,
				HitRadius:     cfg.Canvas.HitRadius,
				StepInterval:  cfg.StepInterval(),
				DrawDuration:  cfg.DrawDuration(),
				FrameInterval: cfg.FrameInterval(),
			})
		},
	}
}
