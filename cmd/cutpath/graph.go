package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/layout"
	"github.com/recera/cutpath/pkg/graph"
)

func newGraphCommand(g *globalFlags) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the backend graph",
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

			out := syncer(cfg).Reload(context.Background())
			if out.Err != nil {
				return fmt.Errorf("failed to load graph: %w", out.Err)
			}

			if asYAML {
				data, err := layout.Encode(out.Snapshot)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}
			printGraph(out.Snapshot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print as a layout file for cutpath import")
	return cmd
}

func printGraph(snap graph.Snapshot) {
	store := graph.NewStore()
	store.Replace(snap)

	fmt.Printf("%d points, %d edges\n", store.Len(), store.EdgeCount())
	for _, id := range store.IDs() {
		p, _ := store.Vertex(id)
		fmt.Printf("  %s (%g, %g)\n", keyColor.Sprint(id), p.X, p.Y)
	}
	for _, e := range store.Edges() {
		fmt.Printf("  %s %s %s\n", e.From, dimColor.Sprint("──"), e.To)
	}

	st := store.Status()
	switch {
	case !st.Known:
	case st.Ready:
		okColor.Println("✓ Ready to optimize")
	default:
		warnColor.Println("⚠ " + st.Message)
	}
}
