package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/recera/cutpath/cmd/cutpath/internal/prompt"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
)

// machineParams applies the --speed and --setup overrides to base. Each
// value falls back on its own, as in the editor's machine prompt.
func machineParams(base api.Params, speed, setup float64, setSpeed, setSetup bool) api.Params {
	s, t := base.Speed, base.SetupTime
	if setSpeed {
		s = speed
	}
	if setSetup {
		t = setup
	}
	return editor.ParseMachine(strconv.FormatFloat(s, 'g', -1, 64)+" "+strconv.FormatFloat(t, 'g', -1, 64), base)
}

func newOptimizeCommand(g *globalFlags) *cobra.Command {
	var (
		speed   float64
		setup   float64
		output  string
		ask     bool
		program bool
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize the current graph and print the result",
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

			p := machineParams(params(cfg), speed, setup, cmd.Flags().Changed("speed"), cmd.Flags().Changed("setup"))
			if cmd.Flags().Changed("speed") && p.Speed != speed {
				warnColor.Printf("⚠ --speed %g is not a positive number, using %g\n", speed, p.Speed)
			}
			if cmd.Flags().Changed("setup") && p.SetupTime != setup {
				warnColor.Printf("⚠ --setup %g is not a positive number, using %g\n", setup, p.SetupTime)
			}
			if ask {
				pr := prompt.New()
				s := pr.Text("Cutting speed (mm/min)", strconv.FormatFloat(p.Speed, 'g', -1, 64))
				t := pr.Text("Setup time per stop (min)", strconv.FormatFloat(p.SetupTime, 'g', -1, 64))
				p = editor.ParseMachine(s+" "+t, p)
			}

			res, err := syncer(cfg).Optimize(context.Background(), p)
			if err != nil {
				return fmt.Errorf("optimization failed: %s", api.Message(err))
			}
			printResult(res)

			if output != "" {
				if err := os.WriteFile(output, []byte(res.Program+"\n"), 0644); err != nil {
					return err
				}
				okColor.Printf("\n✓ Program written to %s\n", output)
			} else if program {
				fmt.Println()
				fmt.Println(res.Program)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 0, "cutting speed in mm/min (default from config)")
	cmd.Flags().Float64Var(&setup, "setup", 0, "setup time per stop in minutes (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the machine program to a file")
	cmd.Flags().BoolVar(&ask, "ask", false, "prompt for the machine parameters")
	cmd.Flags().BoolVar(&program, "program", false, "print the machine program")
	return cmd
}

func printResult(res *api.Result) {
	okColor.Println("✓ Optimized path")
	row := func(label, value string) {
		fmt.Printf("  %s %s\n", keyColor.Sprintf("%-16s", label), value)
	}
	row("Path", strings.Join(res.Cycle, " → "))
	row("Total distance", humanize.CommafWithDigits(res.Distance, 2)+" mm")
	row("Cut time", humanize.CommafWithDigits(res.CutTime, 2)+" min")
	row("Setup time", humanize.CommafWithDigits(res.SetupTime, 2)+" min")
	row("Total time", humanize.CommafWithDigits(res.TotalTime, 2)+" min")
	row("Segments", humanize.Comma(int64(res.Stats.SegmentsTraversed)))
	row("Points visited", humanize.Comma(int64(res.Stats.VerticesVisited)))
}
