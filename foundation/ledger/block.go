package ledger

import (
	"bytes"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/digest"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/timestamp"
	"github.com/shopspring/decimal"
)

// DefaultMaxAgeDays is the oldest a block's timestamp can be, in days, and
// still be appended.
const DefaultMaxAgeDays = 180

// Block represents a single entry in the ledger. The fields can only be set
// at construction, with the position and previous block hash being set once
// by the Chain when the block is appended.
type Block struct {
	number    uint64
	timeStamp string
	tx        Transaction
	prevHash  string
	hash      string
}

// NewBlock constructs a block that is not yet linked to any chain. The
// previous block hash is the ZeroHash until the block is appended.
func NewBlock(timeStamp string, tx Transaction) Block {
	b := Block{
		timeStamp: timeStamp,
		tx:        tx.clone(),
		prevHash:  digest.ZeroHash,
	}
	b.hash = b.CalculateHash()

	return b
}

// CalculateHash returns the hash of the block's current field values. The
// stored hash is not changed.
func (b Block) CalculateHash() string {

	// A Transaction only holds strings so it always serializes.
	data, _ := digest.Canonical(b.tx)

	var buf bytes.Buffer
	buf.WriteString(b.timeStamp)
	buf.Write(data)
	buf.WriteString(b.prevHash)

	return digest.Hash(buf.Bytes())
}

// Number returns the position of the block in its chain. A block that has
// not been appended reports zero, the position of genesis.
func (b Block) Number() uint64 {
	return b.number
}

// Hash returns the stored hash for the block.
func (b Block) Hash() string {
	return b.hash
}

// PrevBlockHash returns the stored hash of the previous block.
func (b Block) PrevBlockHash() string {
	return b.prevHash
}

// TimeStamp returns the date the block was created for.
func (b Block) TimeStamp() string {
	return b.timeStamp
}

// Transaction returns a copy of the block's transaction.
func (b Block) Transaction() Transaction {
	return b.tx.clone()
}

// TID returns the transaction id.
func (b Block) TID() string {
	return b.tx.TID
}

// CreditValue returns the credit amount, zero when there is no credit.
func (b Block) CreditValue() decimal.Decimal {
	return b.tx.CreditValue()
}

// DebitValue returns the debit amount, zero when there is no debit.
func (b Block) DebitValue() decimal.Decimal {
	return b.tx.DebitValue()
}

// ValidateTransaction checks the block's transaction is complete and
// properly formatted.
func (b Block) ValidateTransaction() error {
	return b.tx.Validate()
}

// IsTransactionValid reports the result of ValidateTransaction as a bool
// along with the reason for a failure.
func (b Block) IsTransactionValid() (bool, error) {
	if err := b.ValidateTransaction(); err != nil {
		return false, err
	}

	return true, nil
}

// ValidateTimeStamp checks the timestamp is a valid date that is not in
// the future and no more than maxAgeDays in the past.
func (b Block) ValidateTimeStamp(clock *timestamp.Clock, maxAgeDays int) error {
	days, err := clock.DaysSince(b.timeStamp)
	if err != nil {
		return &ValidationError{Code: CodeInvalidDate, Err: timestamp.ErrInvalidDate, Value: b.timeStamp}
	}

	if days < 0 || days > float64(maxAgeDays) {
		return &ValidationError{Code: CodeTimeStampOutOfRange, Err: ErrTimeStampOutOfRange, Value: b.timeStamp}
	}

	return nil
}

// IsTimeStampValid reports whether the timestamp is inside the default
// window of DefaultMaxAgeDays.
func (b Block) IsTimeStampValid(clock *timestamp.Clock) bool {
	return b.ValidateTimeStamp(clock, DefaultMaxAgeDays) == nil
}

// link binds the block to its predecessor at the specified position. Only
// the Chain calls this, once while appending and again on a rebuild.
func (b *Block) link(number uint64, prevHash string) {
	b.number = number
	b.prevHash = prevHash
	b.hash = b.CalculateHash()
}

// =============================================================================

// BlockData is the flat representation of a block used to share it
// outside the ledger.
type BlockData struct {
	Number        uint64      `json:"number"`
	TimeStamp     string      `json:"timestamp"`
	Transaction   Transaction `json:"transaction"`
	PrevBlockHash string      `json:"prev_block_hash"`
	Hash          string      `json:"hash"`
}

// NewBlockData constructs the value to share for the block.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Number:        block.number,
		TimeStamp:     block.timeStamp,
		Transaction:   block.Transaction(),
		PrevBlockHash: block.prevHash,
		Hash:          block.hash,
	}
}
