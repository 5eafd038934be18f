package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/cipher"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen KEY",
	Short: "Write the document of a Caesar machine",
	Long:  `Prints the YAML document of caesar-<mode>-<k>, which can be edited and run again with --spec.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		output, _ := cmd.Flags().GetString("output")

		shift, err := cipher.ParseKey(args[0])
		if err != nil {
			return err
		}
		mode, err := cipher.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		data, err := loader.Marshal(cipher.Definition(mode, shift))
		if err != nil {
			return err
		}
		if output == "" || output == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringP("mode", "m", string(cipher.Encrypt), "encrypt or decrypt")
	genCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
