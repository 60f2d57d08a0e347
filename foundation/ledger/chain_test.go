package ledger_test

import (
	"errors"
	"testing"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/digest"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/timestamp"
)

func ifErrFailNow(t *testing.T, err error) {
	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

// newChain constructs a chain with three accepted blocks and records every
// event the chain produces.
func newChain(t *testing.T) (*ledger.Chain, *timestamp.Clock, *[]ledger.Event) {
	clock := timestamp.NewFixed(now)

	var events []ledger.Event
	ch := ledger.New(ledger.Config{
		Clock:     clock,
		EvHandler: func(ev ledger.Event) { events = append(events, ev) },
	})

	blocks := []ledger.Block{
		ledger.NewBlock(clock.DaysAgo(30), ledger.NewCredit("A1", "25.50")),
		ledger.NewBlock(clock.DaysAgo(29), ledger.NewDebit("A2", "6.99")),
		ledger.NewBlock(clock.DaysAgo(28), ledger.NewCredit("A3", "5.45")),
	}
	for _, b := range blocks {
		_, err := ch.Append(b)
		ifErrFailNow(t, err)
	}

	return ch, clock, &events
}

// =============================================================================

func Test_Genesis(t *testing.T) {
	t.Log("Given the need to start every chain with the genesis block.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen constructing a new chain.", testID)
		{
			ch := ledger.New(ledger.Config{})

			if ch.Len() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould only hold the genesis block, got %d blocks.", failed, testID, ch.Len())
			}
			t.Logf("\t%s\tTest %d:\tShould only hold the genesis block.", success, testID)

			gen := ch.Genesis()
			if gen.TimeStamp() != ledger.GenesisTimeStamp || gen.Transaction().Memo != ledger.GenesisMemo || gen.PrevBlockHash() != digest.ZeroHash {
				t.Fatalf("\t%s\tTest %d:\tShould have the fixed genesis values.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould have the fixed genesis values.", success, testID)

			if ch.LatestBlock().Hash() != gen.Hash() || gen.Hash() != ledger.NewGenesisBlock().Hash() {
				t.Fatalf("\t%s\tTest %d:\tShould have the genesis block as the latest block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould have the genesis block as the latest block.", success, testID)

			if !ch.Balance().IsZero() || !ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould have a zero balance and verify.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould have a zero balance and verify.", success, testID)
		}
	}
}

func Test_Append(t *testing.T) {
	t.Log("Given the need to append blocks to the chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen appending a credit and a debit.", testID)
		{
			clock := timestamp.NewFixed(now)
			ch := ledger.New(ledger.Config{Clock: clock})

			a, err := ch.Append(ledger.NewBlock(clock.DaysAgo(30), ledger.NewCredit("A1", "25.50")))
			ifErrFailNow(t, err)
			t.Logf("\t%s\tTest %d:\tShould accept block A.", success, testID)

			b, err := ch.Append(ledger.NewBlock(clock.DaysAgo(29), ledger.NewDebit("A2", "6.99")))
			ifErrFailNow(t, err)
			t.Logf("\t%s\tTest %d:\tShould accept block B.", success, testID)

			if a.PrevBlockHash() != ch.Genesis().Hash() || b.PrevBlockHash() != a.Hash() {
				t.Fatalf("\t%s\tTest %d:\tShould link each block to the one before it.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould link each block to the one before it.", success, testID)

			if a.Number() != 1 || b.Number() != 2 || ch.Genesis().Number() != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould number the blocks by position, got %d and %d.", failed, testID, a.Number(), b.Number())
			}
			t.Logf("\t%s\tTest %d:\tShould number the blocks by position.", success, testID)

			if b.Hash() != b.CalculateHash() || ch.LatestBlock().Hash() != b.Hash() {
				t.Fatalf("\t%s\tTest %d:\tShould store the recalculated hash.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould store the recalculated hash.", success, testID)

			if got := ch.Balance().StringFixed(2); got != "18.51" {
				t.Fatalf("\t%s\tTest %d:\tShould have a balance of 18.51, got %s.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould have a balance of 18.51.", success, testID)

			if !ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould verify the chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould verify the chain.", success, testID)
		}
	}
}

func Test_AppendRejected(t *testing.T) {
	type table struct {
		name  string
		block func(clock *timestamp.Clock) ledger.Block
		err   error
		code  string
	}

	tt := []table{
		{
			name: "too-old",
			block: func(clock *timestamp.Clock) ledger.Block {
				return ledger.NewBlock(clock.DaysAgo(200), ledger.NewCredit("X1", "1.00"))
			},
			err:  ledger.ErrTimeStampOutOfRange,
			code: ledger.CodeTimeStampOutOfRange,
		},
		{
			name: "future",
			block: func(clock *timestamp.Clock) ledger.Block {
				return ledger.NewBlock(clock.DaysAgo(-2), ledger.NewCredit("X2", "1.00"))
			},
			err:  ledger.ErrTimeStampOutOfRange,
			code: ledger.CodeTimeStampOutOfRange,
		},
		{
			name: "bad-date",
			block: func(clock *timestamp.Clock) ledger.Block {
				return ledger.NewBlock("2024-4-1", ledger.NewCredit("X3", "1.00"))
			},
			err:  timestamp.ErrInvalidDate,
			code: ledger.CodeInvalidDate,
		},
		{
			name: "no-amount",
			block: func(clock *timestamp.Clock) ledger.Block {
				return ledger.NewBlock(clock.DaysAgo(1), ledger.Transaction{TID: "X"})
			},
			err:  ledger.ErrMissingCreditOrDebit,
			code: ledger.CodeMissingCreditOrDebit,
		},
		{
			name: "transaction-checked-first",
			block: func(clock *timestamp.Clock) ledger.Block {
				return ledger.NewBlock(clock.DaysAgo(500), ledger.NewDebit("X4", "6.9"))
			},
			err:  ledger.ErrInvalidDebitFormat,
			code: ledger.CodeInvalidDebitFormat,
		},
	}

	t.Log("Given the need to reject invalid blocks without changing the chain.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen appending a %s block.", testID, tst.name)
				{
					ch, clock, events := newChain(t)
					length := ch.Len()
					latest := ch.LatestBlock().Hash()

					_, err := ch.Append(tst.block(clock))
					if !errors.Is(err, tst.err) {
						t.Fatalf("\t%s\tTest %d:\tShould get the expected error: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected error.", success, testID)

					if ve := ledger.GetValidationError(err); ve == nil || ve.Code != tst.code {
						t.Fatalf("\t%s\tTest %d:\tShould get code %s: %v", failed, testID, tst.code, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get code %s.", success, testID, tst.code)

					if ch.Len() != length || ch.LatestBlock().Hash() != latest || !ch.Verify() {
						t.Fatalf("\t%s\tTest %d:\tShould leave the chain unchanged.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould leave the chain unchanged.", success, testID)

					last := (*events)[len(*events)-1]
					if last.Type != ledger.EventAppendRejected || last.Code != tst.code {
						t.Fatalf("\t%s\tTest %d:\tShould emit a rejected event, got %s.", failed, testID, last)
					}
					t.Logf("\t%s\tTest %d:\tShould emit a rejected event.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Verify(t *testing.T) {
	t.Log("Given the need to detect changes to the chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the chain is unchanged.", testID)
		{
			ch, _, _ := newChain(t)

			if !ch.Verify() || !ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould verify the chain every time.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould verify the chain every time.", success, testID)
		}

		for number := 1; number <= 3; number++ {
			testID++
			t.Logf("\tTest %d:\tWhen the transaction of block %d is changed.", testID, number)
			{
				ch, _, events := newChain(t)
				ch.TamperTransaction(number, ledger.NewCredit("Z9", "999.99"))

				err := ch.VerifyIntegrity()
				if !errors.Is(err, ledger.ErrBlockTampered) || ch.Verify() {
					t.Fatalf("\t%s\tTest %d:\tShould detect the changed block: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould detect the changed block.", success, testID)

				var ie *ledger.IntegrityError
				if !errors.As(err, &ie) || ie.Number != uint64(number) {
					t.Fatalf("\t%s\tTest %d:\tShould identify block %d: %v", failed, testID, number, err)
				}
				t.Logf("\t%s\tTest %d:\tShould identify block %d.", success, testID, number)

				if last := (*events)[len(*events)-1]; last.Type != ledger.EventVerifyFailed {
					t.Fatalf("\t%s\tTest %d:\tShould emit a verify failed event, got %s.", failed, testID, last)
				}
				t.Logf("\t%s\tTest %d:\tShould emit a verify failed event.", success, testID)
			}
		}

		testID++
		t.Logf("\tTest %d:\tWhen a previous hash is overwritten.", testID)
		{
			ch, _, _ := newChain(t)
			ch.TamperPrevHash(2, digest.Hash([]byte("unrelated")), false)

			if ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould detect the overwritten link.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould detect the overwritten link.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a previous hash is overwritten and the block rehashed.", testID)
		{
			ch, _, _ := newChain(t)
			ch.TamperPrevHash(2, digest.Hash([]byte("unrelated")), true)

			err := ch.VerifyIntegrity()
			if !errors.Is(err, ledger.ErrBrokenLink) {
				t.Fatalf("\t%s\tTest %d:\tShould detect the broken link: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould detect the broken link.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a previous hash is replaced with something that isn't a digest.", testID)
		{
			ch, _, _ := newChain(t)
			ch.TamperPrevHash(2, "not-a-hash", true)

			err := ch.VerifyIntegrity()
			if !errors.Is(err, ledger.ErrMalformedHash) {
				t.Fatalf("\t%s\tTest %d:\tShould report the malformed hash: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould report the malformed hash.", success, testID)

			var ie *ledger.IntegrityError
			if !errors.As(err, &ie) || ie.Number != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould identify block 2: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould identify block 2.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen checking a changed chain without reporting.", testID)
		{
			ch, _, events := newChain(t)
			ch.TamperTransaction(1, ledger.NewCredit("Z9", "999.99"))
			before := len(*events)

			for i := 0; i < 3; i++ {
				if err := ch.CheckIntegrity(); !errors.Is(err, ledger.ErrBlockTampered) {
					t.Fatalf("\t%s\tTest %d:\tShould detect the changed block: %v", failed, testID, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould detect the changed block.", success, testID)

			if len(*events) != before {
				t.Fatalf("\t%s\tTest %d:\tShould not emit any events, got %d.", failed, testID, len(*events)-before)
			}
			t.Logf("\t%s\tTest %d:\tShould not emit any events.", success, testID)

			ch.VerifyIntegrity()
			if len(*events) != before+1 {
				t.Fatalf("\t%s\tTest %d:\tShould emit one event when verifying.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould emit one event when verifying.", success, testID)
		}
	}
}

func Test_Rebuild(t *testing.T) {
	t.Log("Given the need to repair an edited chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen no reason is provided.", testID)
		{
			ch, _, _ := newChain(t)
			ch.TamperTransaction(2, ledger.NewDebit("A2", "1.00"))

			if _, err := ch.Rebuild("  "); !errors.Is(err, ledger.ErrRebuildReason) {
				t.Fatalf("\t%s\tTest %d:\tShould refuse to rebuild: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould refuse to rebuild.", success, testID)

			if ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould still fail verification.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould still fail verification.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen a reason is provided.", testID)
		{
			ch, _, events := newChain(t)
			ch.TamperTransaction(2, ledger.NewDebit("A2", "1.00"))

			relinked, err := ch.Rebuild("correct debit A2")
			ifErrFailNow(t, err)
			t.Logf("\t%s\tTest %d:\tShould rebuild the chain.", success, testID)

			if relinked != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould relink the edited block and the one after, got %d.", failed, testID, relinked)
			}
			t.Logf("\t%s\tTest %d:\tShould relink the edited block and the one after.", success, testID)

			if !ch.Verify() {
				t.Fatalf("\t%s\tTest %d:\tShould verify after the rebuild.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould verify after the rebuild.", success, testID)

			if got := ch.Balance().StringFixed(2); got != "29.95" {
				t.Fatalf("\t%s\tTest %d:\tShould have a balance of 29.95, got %s.", failed, testID, got)
			}
			t.Logf("\t%s\tTest %d:\tShould have a balance of 29.95.", success, testID)

			if last := (*events)[len(*events)-1]; last.Type != ledger.EventRebuild {
				t.Fatalf("\t%s\tTest %d:\tShould emit a rebuild event, got %s.", failed, testID, last)
			}
			t.Logf("\t%s\tTest %d:\tShould emit a rebuild event.", success, testID)
		}
	}
}

func Test_Query(t *testing.T) {
	t.Log("Given the need to query the chain.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen listing and finding blocks.", testID)
		{
			ch, _, events := newChain(t)

			blocks := ch.Blocks()
			if len(blocks) != 4 || blocks[3].Number != 3 || blocks[3].PrevBlockHash != blocks[2].Hash {
				t.Fatalf("\t%s\tTest %d:\tShould list every block in order.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould list every block in order.", success, testID)

			found := ch.QueryByTID("A2")
			if len(found) != 1 || found[0].Number != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould find block 2 by tid.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould find block 2 by tid.", success, testID)

			blk, err := ch.Block(2)
			ifErrFailNow(t, err)
			if blk.Number() != 2 || blk.TID() != "A2" || ledger.NewBlockData(blk).Hash != blocks[2].Hash {
				t.Fatalf("\t%s\tTest %d:\tShould find block 2 by position.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould find block 2 by position.", success, testID)

			if _, err := ch.Block(4); !errors.Is(err, ledger.ErrBlockNotFound) {
				t.Fatalf("\t%s\tTest %d:\tShould not find block 4: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould not find block 4.", success, testID)

			accepted := 0
			for _, ev := range *events {
				if ev.Type == ledger.EventAppendAccepted {
					accepted++
				}
			}
			if accepted != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould emit an accepted event per block, got %d.", failed, testID, accepted)
			}
			t.Logf("\t%s\tTest %d:\tShould emit an accepted event per block.", success, testID)
		}
	}
}
