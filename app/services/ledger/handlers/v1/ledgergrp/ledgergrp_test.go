package ledgergrp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/web"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ShutdownOnPanic(t *testing.T) {
	t.Log("Given the need to stop the service when the ledger is corrupted.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the append panics with a corruption error.", testID)
		{
			_, err := shutdownOnPanic(func() (ledger.Block, error) {
				panic(fmt.Errorf("%w: tid[X1]: length[3] exp[4]", ledger.ErrChainCorruption))
			})

			if !web.IsShutdown(err) {
				t.Fatalf("\t%s\tTest %d:\tShould get a shutdown error: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get a shutdown error.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the append returns normally.", testID)
		{
			exp := ledger.NewGenesisBlock()
			blk, err := shutdownOnPanic(func() (ledger.Block, error) {
				return exp, nil
			})

			if err != nil || blk.Hash() != exp.Hash() {
				t.Fatalf("\t%s\tTest %d:\tShould pass the block through: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould pass the block through.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the append rejects the block.", testID)
		{
			_, err := shutdownOnPanic(func() (ledger.Block, error) {
				return ledger.Block{}, ledger.ErrMissingTransactionID
			})

			if web.IsShutdown(err) || !errors.Is(err, ledger.ErrMissingTransactionID) {
				t.Fatalf("\t%s\tTest %d:\tShould pass the rejection through: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould pass the rejection through.", success, testID)
		}
	}
}
