package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks [tid]",
	Short: "List the blocks in the ledger, or the blocks for one transaction.",
	Args:  cobra.MaximumNArgs(1),
	Run:   blocksRun,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}

func blocksRun(cmd *cobra.Command, args []string) {
	path := "/v1/blocks/list"
	if len(args) == 1 {
		path += "/" + args[0]
	}

	var blocks []block
	if err := get(url, path, &blocks); err != nil {
		log.Fatal(err)
	}

	for _, blk := range blocks {
		fmt.Println(formatBlock(blk))
	}
}

func formatBlock(blk block) string {
	kind, amt := "", ""
	switch {
	case blk.Transaction.Credit != nil:
		kind, amt = "CR", *blk.Transaction.Credit
	case blk.Transaction.Debit != nil:
		kind, amt = "DR", *blk.Transaction.Debit
	}

	return fmt.Sprintf("%4d %s %-36s %2s %10s %s", blk.Number, blk.TimeStamp, blk.Transaction.TID, kind, amt, blk.Hash)
}
