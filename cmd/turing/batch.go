package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/batch"
	"github.com/aretw0/turing/pkg/cipher"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Run every case of a case file",
	Long: `Runs each "KEY#MESSAGE" line of FILE through the Caesar machines.
Lines of the form "KEY#MESSAGE => EXPECTED" are checked against EXPECTED.
The mode defaults to decrypt for files named ` + batch.DecryptCasesFile + ` and encrypt otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		asJSON, _ := cmd.Flags().GetBool("json")

		mode := cipher.Encrypt
		if filepath.Base(args[0]) == batch.DecryptCasesFile {
			mode = cipher.Decrypt
		}
		if modeFlag != "" {
			var err error
			if mode, err = cipher.ParseMode(modeFlag); err != nil {
				return err
			}
		}

		cases, err := batch.LoadFile(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		a, err := setup(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		runner := batch.NewRunner(a.cipher, batch.WithConcurrency(concurrency), batch.WithLogger(a.logger))
		results, err := runner.Run(ctx, mode, cases)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return err
			}
		} else if err := batch.WriteReport(out, results); err != nil {
			return err
		}

		if !batch.Summarize(results).OK() {
			fmt.Fprintln(cmd.ErrOrStderr(), tui.NewStyler(cmd.ErrOrStderr()).Error("some cases did not pass"))
		}
		return batch.Errors(results)
	},
}

var casesCmd = &cobra.Command{
	Use:   "cases [DIR]",
	Short: "Write the sample case files",
	Long:  `Writes ` + batch.EncryptCasesFile + ` and ` + batch.DecryptCasesFile + ` into DIR (default: current directory).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		ctx := cmd.Context()
		a, err := setup(ctx, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		paths, err := batch.InitDir(ctx, a.cipher, dir)
		if err != nil {
			return err
		}
		styler := tui.NewStyler(cmd.OutOrStdout())
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), styler.Success("wrote "+p))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd, casesCmd)
	batchCmd.Flags().StringP("mode", "m", "", "encrypt or decrypt")
	batchCmd.Flags().IntP("concurrency", "c", 4, "Cases run in parallel")
	batchCmd.Flags().Bool("json", false, "Print results as JSON")
}
