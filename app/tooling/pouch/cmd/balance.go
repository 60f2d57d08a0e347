package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the ledger balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	var bal balance
	if err := get(url, "/v1/balance", &bal); err != nil {
		log.Fatal(err)
	}

	fmt.Println("Blocks:", bal.Blocks)
	fmt.Println("Latest:", bal.LatestBlock)
	fmt.Println(bal.Balance)
}
