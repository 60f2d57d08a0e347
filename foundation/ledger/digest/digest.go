// Package digest provides the hashing support used to bind ledger blocks
// together.
package digest

import (
	"crypto/sha256"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the previous block hash
// of any block that has not been linked into a chain.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Length is the number of characters in a rendered digest, including
// the 0x prefix.
const Length = len(ZeroHash)

// =============================================================================

// Hash returns the SHA-256 digest of the data as a 0x prefixed hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Canonical returns the canonical JSON form of the value. Struct fields
// marshal in declaration order and map keys are sorted, so the same value
// always produces the same bytes.
func Canonical(value any) ([]byte, error) {
	return json.Marshal(value)
}

// IsDigest checks the string has the shape of a rendered digest.
func IsDigest(s string) bool {
	if len(s) != Length || !strings.HasPrefix(s, "0x") {
		return false
	}

	for _, c := range s[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}

	return true
}
