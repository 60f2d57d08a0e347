package cmd

import (
	"fmt"
	"log"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/timestamp"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/validate"
	"github.com/spf13/cobra"
)

var (
	amount string
	date   string
	tid    string
	memo   string
)

var creditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Add money to the ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		addRun(func(nb *newBlock, amt string) { nb.Credit = &amt })
	},
}

func init() {
	rootCmd.AddCommand(creditCmd)
	addFlags(creditCmd)
}

// addFlags registers the flags shared by the credit and debit commands.
func addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&amount, "amount", "m", "", "Amount of the transaction.")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date of the transaction as yyyy-mm-dd, defaults to today.")
	cmd.Flags().StringVarP(&tid, "tid", "i", "", "Unique id for the transaction, one is generated when empty.")
	cmd.Flags().StringVarP(&memo, "memo", "n", "", "Note to keep with the transaction.")
	cmd.MarkFlagRequired("amount")
}

func addRun(setAmount func(nb *newBlock, amt string)) {
	amt, err := normalizeAmount(amount)
	if err != nil {
		log.Fatal(err)
	}

	if date == "" {
		date = timestamp.New().Today()
	}

	if tid == "" {
		tid = validate.GenerateID()
	}

	nb := newBlock{
		Date: date,
		TID:  tid,
		Memo: memo,
	}
	setAmount(&nb, amt)

	blk, err := submit(url, nb)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Block:", blk.Number)
	fmt.Println("TID:", blk.Transaction.TID)
	fmt.Println("Hash:", blk.Hash)
}
