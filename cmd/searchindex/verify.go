package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyrup-ai/get.cyrup.ai/core"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <index-file>",
	Short: "Check an index file for internal consistency",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchIndex, err := core.LoadFile(args[0])
		if err != nil {
			return err
		}
		if err := core.Verify(searchIndex); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %s\n", args[0], searchIndex)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
