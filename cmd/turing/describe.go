package main

import (
	"fmt"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [MACHINE]",
	Short: "Show the states and transition table of a machine",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		style, _ := cmd.Flags().GetString("style")

		var name string
		if len(args) > 0 {
			name = args[0]
		}

		a, err := setup(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		spec, err := a.resolve(name)
		if err != nil {
			return err
		}

		doc := tui.Describe(spec)
		if !raw {
			render, err := tui.NewRenderer(style)
			if err != nil {
				return err
			}
			if doc, err = render(doc); err != nil {
				return err
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known machines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.machines.ListMachines()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd, listCmd)
	describeCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	describeCmd.Flags().String("style", "", "glamour style (dark, light, notty); detected when empty")
}
