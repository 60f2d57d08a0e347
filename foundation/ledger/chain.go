// Package ledger implements a tamper evident, append only chain of blocks
// recording credit and debit transactions.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/digest"
	"github.com/MWatkins-UH/chain-pouch-project/foundation/ledger/timestamp"
	"github.com/shopspring/decimal"
)

// Values that make up the genesis block.
const (
	GenesisTimeStamp = "1970-01-01"
	GenesisMemo      = "Genesis Block"
)

// NewGenesisBlock constructs the fixed block every chain starts with.
func NewGenesisBlock() Block {
	return NewBlock(GenesisTimeStamp, Transaction{Memo: GenesisMemo})
}

// =============================================================================

// Config represents the configuration required to construct a chain.
type Config struct {
	Clock      *timestamp.Clock
	MaxAgeDays int
	EvHandler  EventHandler
}

// Chain manages the ordered set of blocks rooted at the genesis block.
type Chain struct {
	mu sync.RWMutex

	clock      *timestamp.Clock
	maxAgeDays int
	evHandler  EventHandler

	blocks []Block
}

// New constructs a chain holding only the genesis block.
func New(cfg Config) *Chain {
	clock := cfg.Clock
	if clock == nil {
		clock = timestamp.New()
	}

	maxAgeDays := cfg.MaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}

	ev := cfg.EvHandler
	if ev == nil {
		ev = func(Event) {}
	}

	return &Chain{
		clock:      clock,
		maxAgeDays: maxAgeDays,
		evHandler:  ev,
		blocks:     []Block{NewGenesisBlock()},
	}
}

// Append validates the block and links it to the end of the chain. A block
// that fails validation is returned as a ValidationError and the chain is
// left unchanged. The linked block is returned on success.
func (c *Chain) Append(block Block) (Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := block.ValidateTransaction(); err != nil {
		c.reject(block, err)
		return Block{}, err
	}

	if err := block.ValidateTimeStamp(c.clock, c.maxAgeDays); err != nil {
		c.reject(block, err)
		return Block{}, err
	}

	length := len(c.blocks)
	block.link(uint64(length), c.blocks[length-1].hash)
	c.blocks = append(c.blocks, block)

	// An append that doesn't grow the chain by one is a bug, not bad input.
	if len(c.blocks) != length+1 {
		c.evHandler(Event{Type: EventChainCorruption, TID: block.TID(), Code: CodeChainCorruption, Detail: fmt.Sprintf("length[%d] exp[%d]", len(c.blocks), length+1)})
		panic(fmt.Errorf("%w: tid[%s]: length[%d] exp[%d]", ErrChainCorruption, block.TID(), len(c.blocks), length+1))
	}

	c.evHandler(Event{Type: EventAppendAccepted, Number: uint64(length), TID: block.TID(), Hash: block.hash})

	return block, nil
}

// Verify walks the chain and reports whether every block still matches its
// hash and is linked to the block before it.
func (c *Chain) Verify() bool {
	return c.VerifyIntegrity() == nil
}

// VerifyIntegrity walks the chain from the first block after genesis and
// returns an IntegrityError for the first block that has been altered or
// whose link to the previous block is broken. A failure is reported to the
// event handler.
func (c *Chain) VerifyIntegrity() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	err := c.checkIntegrity()

	var ie *IntegrityError
	if errors.As(err, &ie) {
		c.evHandler(Event{Type: EventVerifyFailed, Number: ie.Number, Hash: c.blocks[ie.Number].hash, Detail: ie.Err.Error()})
	}

	return err
}

// CheckIntegrity performs the same walk as VerifyIntegrity without
// reporting a failure to the event handler. It is meant for callers that
// poll the chain, like health checks.
func (c *Chain) CheckIntegrity() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.checkIntegrity()
}

// Rebuild recalculates the links and hashes of every block after genesis.
// This makes an edited chain verify again and erases the evidence of the
// edit, so a reason must be provided and is reported in a rebuild event.
// The number of blocks whose link or hash changed is returned.
func (c *Chain) Rebuild(reason string) (int, error) {
	if strings.TrimSpace(reason) == "" {
		return 0, ErrRebuildReason
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var relinked int
	for i := 1; i < len(c.blocks); i++ {
		b := &c.blocks[i]
		prevHash, hash := b.prevHash, b.hash

		b.link(uint64(i), c.blocks[i-1].hash)
		if b.prevHash != prevHash || b.hash != hash {
			relinked++
		}
	}

	c.evHandler(Event{Type: EventRebuild, Number: uint64(len(c.blocks) - 1), Detail: fmt.Sprintf("reason[%s]: relinked[%d]", reason, relinked)})

	return relinked, nil
}

// Balance returns the sum of all credits minus the sum of all debits.
func (c *Chain) Balance() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	credit := decimal.Zero
	debit := decimal.Zero
	for _, b := range c.blocks {
		credit = credit.Add(b.CreditValue())
		debit = debit.Add(b.DebitValue())
	}

	return credit.Sub(debit)
}

// Genesis returns the first block in the chain.
func (c *Chain) Genesis() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[0]
}

// LatestBlock returns the most recently appended block, which is the
// genesis block for a new chain.
func (c *Chain) LatestBlock() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1]
}

// Len returns the number of blocks in the chain including genesis.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Block returns the block at the specified position in the chain.
func (c *Chain) Block(number uint64) (Block, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if number >= uint64(len(c.blocks)) {
		return Block{}, fmt.Errorf("blk[%d]: %w", number, ErrBlockNotFound)
	}

	return c.blocks[number], nil
}

// Blocks returns a copy of every block in the chain.
func (c *Chain) Blocks() []BlockData {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]BlockData, len(c.blocks))
	for i, b := range c.blocks {
		out[i] = NewBlockData(b)
	}

	return out
}

// QueryByTID returns a copy of every block recorded for the transaction id.
// Transaction ids are not required to be unique so more than one block can
// be returned.
func (c *Chain) QueryByTID(tid string) []BlockData {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []BlockData
	for _, b := range c.blocks {
		if tid != "" && b.tx.TID == tid {
			out = append(out, NewBlockData(b))
		}
	}

	return out
}

// =============================================================================

// reject reports a block that failed validation.
func (c *Chain) reject(block Block, err error) {
	ev := Event{Type: EventAppendRejected, TID: block.TID(), Detail: err.Error()}
	if ve := GetValidationError(err); ve != nil {
		ev.Code = ve.Code
	}

	c.evHandler(ev)
}

// checkIntegrity walks the chain. The caller must hold the lock.
func (c *Chain) checkIntegrity() error {
	for i := 1; i < len(c.blocks); i++ {
		current := c.blocks[i]
		previous := c.blocks[i-1]

		switch {
		case !digest.IsDigest(current.hash) || !digest.IsDigest(current.prevHash):
			return &IntegrityError{Number: uint64(i), Err: ErrMalformedHash}

		case current.hash != current.CalculateHash():
			return &IntegrityError{Number: uint64(i), Err: ErrBlockTampered}

		case current.prevHash != previous.hash:
			return &IntegrityError{Number: uint64(i), Err: ErrBrokenLink}
		}
	}

	return nil
}
