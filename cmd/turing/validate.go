package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/spf13/cobra"
)

var errInvalidDocuments = errors.New("invalid machine documents")

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check machine documents",
	Long: `Compiles each document and reports every problem found: unknown states, symbols outside the alphabet, conflicting rules.
Documents that compile are also checked for unreachable and dead-end states; use --strict to fail on those warnings.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		out := cmd.OutOrStdout()
		styler := tui.NewStyler(out)

		failed := false
		for _, path := range args {
			spec, err := loader.LoadFile(path)
			if err != nil {
				failed = true
				fmt.Fprintln(out, styler.Error(path))
				problems := machine.ValidationErrors(err)
				if len(problems) == 0 {
					problems = []error{err}
				}
				for _, p := range problems {
					fmt.Fprintf(out, "    %v\n", p)
				}
				continue
			}
			fmt.Fprintln(out, styler.Success(fmt.Sprintf("%s: %s (%d states, %d transitions)",
				path, spec.Name(), len(spec.States()), spec.Table().Len())))
			findings := validator.Lint(spec)
			for _, f := range findings {
				fmt.Fprintf(out, "    warning: %s\n", f)
			}
			if strict && len(findings) > 0 {
				failed = true
			}
		}
		if failed {
			return errInvalidDocuments
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat structural warnings as errors")
}
