package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ib-77/intcode/internal/ui"
	"github.com/ib-77/intcode/pkg/circuit"
	"github.com/ib-77/intcode/pkg/intcode"
)

func amplifyCmd(s *settings) *cobra.Command {
	var (
		phases   string
		order    string
		feedback bool
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "amplify FILE",
		Short: "Find the phase order with the strongest signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}

			ctx := circuit.WithWorkers(cmd.Context(), s.cfg.Circuit.Workers)
			ctx = circuit.WithMemoryLimit(ctx, s.cfg.Machine.MemoryLimit)

			if order != "" {
				seq, err := intcode.Parse(order)
				if err != nil {
					return fmt.Errorf("invalid order: %w", err)
				}
				run := circuit.Chain
				if feedback {
					run = circuit.Ring
				}
				v, err := run(ctx, program, seq, seed)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMsg("signal %s", ui.Bold(strconv.FormatInt(v, 10))))
				return nil
			}

			if phases == "" {
				phases = "0,1,2,3,4"
				if feedback {
					phases = "5,6,7,8,9"
				}
			}
			set, err := intcode.Parse(phases)
			if err != nil {
				return fmt.Errorf("invalid phases: %w", err)
			}

			best, err := circuit.MaxSignal(ctx, program, set, feedback)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Table(
				[]string{"Phases", "Signal"},
				[][]string{{joinInts(best.Phases), strconv.FormatInt(best.Value, 10)}},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&phases, "phases", "", "Phase settings to permute (default 0-4, or 5-9 with --feedback)")
	cmd.Flags().StringVar(&order, "order", "", "Run one phase order instead of searching")
	cmd.Flags().BoolVar(&feedback, "feedback", false, "Wire the last amplifier back into the first")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Signal fed to the first amplifier with --order")
	return cmd
}

func joinInts(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}
