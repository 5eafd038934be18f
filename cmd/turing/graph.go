package main

import (
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [MACHINE]",
	Short: "Print a Mermaid diagram of a machine",
	Long: `Prints the state diagram of MACHINE (or of --spec) in Mermaid syntax.
With --input the machine is run first and the visited states are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name string
		if len(args) > 0 {
			name = args[0]
		}

		ctx := cmd.Context()
		a, err := setup(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		spec, err := a.resolve(name)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			trace := &graph.Trace{}
			m, err := turing.New(spec, a.options(trace.Hooks(spec.Start()))...)
			if err != nil {
				return err
			}
			if _, err := m.Run(ctx, input); err != nil {
				return err
			}
			overlay = trace.Overlay()
		}

		fmt.Fprintln(cmd.OutOrStdout(), graph.GenerateMermaid(spec, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Run the machine over this input and highlight the path")
}
