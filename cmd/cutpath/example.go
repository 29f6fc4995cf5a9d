package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/prompt"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/reconcile"
)

var exampleKinds = []string{api.ExampleRectangle, api.ExampleStar, api.ExampleGrid}

func newExampleCommand(g *globalFlags) *cobra.Command {
	var centerX, centerY float64

	cmd := &cobra.Command{
		Use:       "example [" + exampleKinds[0] + "|" + exampleKinds[1] + "|" + exampleKinds[2] + "]",
		Short:     "Replace the graph with a ready-made example",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: exampleKinds,
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

			var kind string
			if len(args) == 1 {
				kind = args[0]
			} else {
				kind = exampleKinds[prompt.New().Select("Which example?", exampleKinds, 0)]
			}
			if !validKind(kind) {
				return fmt.Errorf("unknown example %q", kind)
			}

			out := syncer(cfg).LoadExample(context.Background(), kind, geometry.Pt(centerX, centerY))
			if out.Err != nil && !out.Applied {
				return fmt.Errorf("failed to load example: %s", api.Message(out.Err))
			}
			if out.Err != nil {
				warnColor.Printf("⚠ some steps failed: %v\n", out.Err)
			}
			okColor.Printf("✓ Loaded %s\n", kind)
			printGraph(out.Snapshot)
			return nil
		},
	}

	cmd.Flags().Float64Var(&centerX, "center-x", reconcile.ExampleCenter.X, "x of the example center")
	cmd.Flags().Float64Var(&centerY, "center-y", reconcile.ExampleCenter.Y, "y of the example center")
	return cmd
}

func validKind(kind string) bool {
	for _, k := range exampleKinds {
		if k == kind {
			return true
		}
	}
	return false
}
