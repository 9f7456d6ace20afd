package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ib-77/intcode/internal/ui"
	"github.com/ib-77/intcode/pkg/circuit"
	"github.com/ib-77/intcode/pkg/intcode"
	"github.com/ib-77/intcode/pkg/robots"
)

func paintCmd(s *settings) *cobra.Command {
	var start int64

	cmd := &cobra.Command{
		Use:   "paint FILE",
		Short: "Run the hull painting robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != robots.Black && start != robots.White {
				return fmt.Errorf("invalid start colour %d", start)
			}
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}

			panels, err := robots.Paint(cmd.Context(), program, start, s.machineOptions()...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Canvas(panels, ui.HullPalette, robots.Black, true))
			fmt.Fprintln(out, ui.SuccessMsg("painted %d panels", len(panels)))
			return nil
		},
	}
	cmd.Flags().Int64Var(&start, "start", robots.Black, "Colour of the starting panel (0 black, 1 white)")
	return cmd
}

func arcadeCmd(s *settings) *cobra.Command {
	var play bool

	cmd := &cobra.Command{
		Use:   "arcade FILE",
		Short: "Run the arcade cabinet",
		Long:  "Count the blocks on the start screen, or with --play insert quarters and\nlet the joystick follow the ball until the game ends.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !play {
				ctx := circuit.WithMemoryLimit(cmd.Context(), s.cfg.Machine.MemoryLimit)
				n, err := robots.CountTiles(ctx, program, robots.Block)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.SuccessMsg("%d blocks", n))
				return nil
			}

			a := robots.NewArcade()
			if err := robots.Play(cmd.Context(), program, 2, a, s.machineOptions()...); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Canvas(a.Screen, ui.ArcadePalette, robots.Empty, false))
			fmt.Fprintln(out, ui.SuccessMsg("score %s", ui.Bold(strconv.FormatInt(a.Score, 10))))
			if left := a.Count(robots.Block); left > 0 {
				fmt.Fprintln(out, ui.WarnMsg("%d blocks left", left))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&play, "play", false, "Play the game to the end")
	return cmd
}

func exploreCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "explore FILE",
		Short: "Map the area reachable by the repair droid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}

			e, err := robots.Explore(cmd.Context(), program, s.machineOptions()...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Canvas(e.Area, ui.AreaPalette, robots.Unknown, true))
			if e.Target == nil {
				fmt.Fprintln(out, ui.WarnMsg("no target found in %d cells", len(e.Area)))
				return nil
			}
			fmt.Fprintln(out, ui.SuccessMsg("target at %d,%d", e.Target.X, e.Target.Y))
			return nil
		},
	}
}
