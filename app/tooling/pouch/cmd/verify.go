package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the ledger has not been altered.",
	Run: func(cmd *cobra.Command, args []string) {
		var ver verification
		if err := get(url, "/v1/verify", &ver); err != nil {
			log.Fatal(err)
		}

		if !ver.Valid {
			fmt.Printf("INVALID: block %d: %s\n", ver.Number, ver.Reason)
			os.Exit(2)
		}

		fmt.Println("VALID")
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
