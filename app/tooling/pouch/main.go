// This program submits transactions to and reads the state of a ledger
// service.
package main

import "github.com/MWatkins-UH/chain-pouch-project/app/tooling/pouch/cmd"

func main() {
	cmd.Execute()
}
