package main

import (
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive cipher menu",
	Long: `Shows the numbered menu: encrypt the case file, decrypt the case file,
view both files, type a message by hand, or exit.
Missing case files are created from the built-in samples.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		out, _ := cmd.Flags().GetString("out")

		a, err := setup(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()

		menu := cli.NewMenu(cli.MenuOptions{
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Cipher:      a.cipher,
			Logger:      a.logger,
			CasesDir:    dir,
			OutDir:      out,
			Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		})
		return menu.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringP("dir", "d", ".", "Directory holding the case files")
	menuCmd.Flags().StringP("out", "o", "", "Directory for result files (default: --dir)")
}
