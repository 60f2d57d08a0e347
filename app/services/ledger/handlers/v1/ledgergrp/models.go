package ledgergrp

import "github.com/MWatkins-UH/chain-pouch-project/foundation/ledger"

// NewBlock is what a client submits to append a block to the ledger. The
// ledger decides if the transaction is complete, the tags only guard the
// shape of the request.
type NewBlock struct {
	Date   string  `json:"date" validate:"required"`
	TID    string  `json:"tid" validate:"omitempty,max=64"`
	Credit *string `json:"credit"`
	Debit  *string `json:"debit"`
	Memo   string  `json:"memo" validate:"max=256"`
}

func (nb NewBlock) toBlock() ledger.Block {
	tx := ledger.Transaction{
		TID:    nb.TID,
		Credit: nb.Credit,
		Debit:  nb.Debit,
		Memo:   nb.Memo,
	}

	return ledger.NewBlock(nb.Date, tx)
}

type balance struct {
	Balance     string `json:"balance"`
	Blocks      int    `json:"blocks"`
	LatestBlock string `json:"latest_block"`
	Subscribers int    `json:"subscribers"`
}

type verification struct {
	Valid  bool   `json:"valid"`
	Number uint64 `json:"number,omitempty"`
	Reason string `json:"reason,omitempty"`
}
