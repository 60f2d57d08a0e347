package cmd

import (
	"github.com/spf13/cobra"
)

var debitCmd = &cobra.Command{
	Use:   "debit",
	Short: "Take money out of the ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		addRun(func(nb *newBlock, amt string) { nb.Debit = &amt })
	},
}

func init() {
	rootCmd.AddCommand(debitCmd)
	addFlags(debitCmd)
}
