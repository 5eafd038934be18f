package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/spf13/cobra"
)

var encryptCmd = newCipherCmd(cipher.Encrypt)

var decryptCmd = newCipherCmd(cipher.Decrypt)

func newCipherCmd(mode cipher.Mode) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s KEY MESSAGE...", mode),
		Short: fmt.Sprintf("Run the Caesar %s machine over a message", mode),
		Long: fmt.Sprintf(`Runs caesar-%s-<k> over MESSAGE. KEY is a number or a single letter (A=1 ... Z=26).
Remaining arguments are joined with single spaces. The message must use A-Z and spaces only,
unless --upper is given.`, mode),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upper, _ := cmd.Flags().GetBool("upper")
			verbose, _ := cmd.Flags().GetBool("verbose")

			shift, err := cipher.ParseKey(args[0])
			if err != nil {
				return err
			}
			msg := strings.Join(args[1:], " ")
			if upper {
				msg = strings.ToUpper(msg)
			}

			ctx := cmd.Context()
			a, err := setup(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.cipher.Machine(mode, shift)
			if err != nil {
				return err
			}
			record, err := m.Record(ctx, msg)
			if err != nil {
				return err
			}

			out, runErr := turing.Output(&record.Result)
			if verbose {
				styler := tui.NewStyler(cmd.ErrOrStderr())
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s in %d steps (run %s)\n",
					styler.Header(record.Machine), styler.Outcome(record.Result.Outcome), record.Result.Steps, record.ID)
			}
			if runErr != nil {
				return runErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolP("upper", "u", false, "Upper-case the message before running")
	cmd.Flags().BoolP("verbose", "v", false, "Report outcome and step count on stderr")
	return cmd
}

func init() {
	rootCmd.AddCommand(encryptCmd, decryptCmd)
}
