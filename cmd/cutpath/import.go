package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/layout"
	"github.com/recera/cutpath/pkg/graph"
	"github.com/recera/cutpath/pkg/reconcile"
)

func newImportCommand(g *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "import [layout.yaml]",
		Short: "Replace the graph with a YAML layout",
		Long: `Clears the backend and re-creates every point and edge of a layout file.
With --watch the layout is imported again each time the file changes.`,
		Args: cobra.ExactArgs(1),
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

			path := args[0]
			snap, err := layout.Load(path)
			if err != nil {
				return err
			}
			s := syncer(cfg)
			importLayout(s, path, snap)
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			dimColor.Printf("Watching %s for changes (Ctrl+C to stop)\n", path)
			err = layout.Watch(ctx, path, func(snap graph.Snapshot, err error) {
				if err != nil {
					errColor.Printf("✗ %v\n", err)
					return
				}
				importLayout(s, path, snap)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-import when the file changes")
	return cmd
}

func importLayout(s *reconcile.Syncer, path string, snap graph.Snapshot) {
	out := s.Replace(context.Background(), snap)
	if out.Err != nil {
		warnColor.Printf("⚠ %s: %v\n", path, out.Err)
	}
	if out.Applied {
		okColor.Printf("✓ Imported %s: %d points, %d edges\n", path, len(out.Snapshot.Vertices), len(out.Snapshot.Edges))
	} else {
		errColor.Printf("✗ could not reload the graph after importing %s\n", path)
	}
}
