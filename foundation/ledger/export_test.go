package ledger

// TamperTransaction replaces the transaction of a stored block without
// recalculating any hashes.
func (c *Chain) TamperTransaction(number int, tx Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks[number].tx = tx
}

// TamperPrevHash replaces the previous block hash of a stored block. When
// rehash is true the block's own hash is recalculated to hide the edit.
func (c *Chain) TamperPrevHash(number int, prevHash string, rehash bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := &c.blocks[number]
	b.prevHash = prevHash
	if rehash {
		b.hash = b.CalculateHash()
	}
}
