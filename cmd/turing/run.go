package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [MACHINE] INPUT",
	Short: "Run a machine over an input",
	Long: `Runs MACHINE over INPUT and prints the final tape.
With a single argument the machine is read from --spec.
Runs that are rejected or exceed --step-limit exit with an error after printing the result.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		withGraph, _ := cmd.Flags().GetBool("graph")

		var name, input string
		if len(args) == 2 {
			name, input = args[0], args[1]
		} else {
			input = args[0]
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

		trace := &graph.Trace{}
		m, err := turing.New(spec, a.options(trace.Hooks(spec.Start()))...)
		if err != nil {
			return err
		}
		record, err := m.Record(ctx, input)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(record); err != nil {
				return err
			}
		} else {
			styler := tui.NewStyler(out)
			fmt.Fprintf(out, "%s %s\n", styler.Header("Machine:"), record.Machine)
			fmt.Fprintf(out, "%s %s\n", styler.Header("Outcome:"), styler.Outcome(record.Result.Outcome))
			fmt.Fprintf(out, "%s %s\n", styler.Header("State:  "), record.Result.FinalState)
			fmt.Fprintf(out, "%s %d\n", styler.Header("Steps:  "), record.Result.Steps)
			fmt.Fprintf(out, "%s %q\n", styler.Header("Tape:   "), record.Result.Output)
			fmt.Fprintf(out, "%s %s\n", styler.Header("Run:    "), record.ID)
		}
		if withGraph {
			fmt.Fprintln(out)
			fmt.Fprintln(out, graph.GenerateMermaid(spec, trace.Overlay()))
		}

		_, err = turing.Output(&record.Result)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("json", false, "Print the run record as JSON")
	runCmd.Flags().Bool("graph", false, "Print a Mermaid diagram highlighting the visited states")
}
