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

func runCmd(s *settings) *cobra.Command {
	var (
		patches []string
		inputs  []int64
		show    []int64
		batch   bool
	)

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program to completion",
		Long: "Run a program to completion. Without --input or --batch the program talks\n" +
			"to the terminal; otherwise outputs are printed one per line once it halts.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}
			set, err := parsePatches(patches)
			if err != nil {
				return err
			}

			b := circuit.Batch{
				Patches: set,
				Inputs:  inputs,
				Console: !batch && len(inputs) == 0,
			}
			ctx := circuit.WithMemoryLimit(cmd.Context(), s.cfg.Machine.MemoryLimit)
			res, err := circuit.RunBatch(ctx, program, b)
			for _, v := range res.Outputs {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			if err != nil {
				return err
			}

			if len(show) > 0 {
				pairs := make([]ui.Pair, 0, len(show))
				for _, a := range show {
					v := "-"
					if a >= 0 && a < int64(len(res.Memory)) {
						v = strconv.FormatInt(res.Memory[a], 10)
					}
					pairs = append(pairs, ui.KV(fmt.Sprintf("[%d]", a), v))
				}
				fmt.Fprint(cmd.ErrOrStderr(), ui.KeyValues("  ", pairs...))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&patches, "set", nil, "Patch memory before the run, as addr=value")
	cmd.Flags().Int64SliceVar(&inputs, "input", nil, "Feed these values instead of the terminal")
	cmd.Flags().BoolVar(&batch, "batch", false, "Never read from the terminal")
	cmd.Flags().Int64SliceVar(&show, "show", nil, "Print these memory cells after the run")
	return cmd
}

func parsePatches(in []string) (map[int64]int64, error) {
	out := make(map[int64]int64, len(in))
	for _, p := range in {
		addr, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid patch %q: want addr=value", p)
		}
		a, err := strconv.ParseInt(strings.TrimSpace(addr), 10, 64)
		if err != nil || a < 0 {
			return nil, fmt.Errorf("invalid patch address %q", addr)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid patch value %q", value)
		}
		out[a] = v
	}
	return out, nil
}

func disasmCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "disasm FILE",
		Short: "Print a program listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := intcode.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, line := range intcode.Disassemble(program) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
