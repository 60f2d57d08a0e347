package ledger

import (
	"errors"
	"fmt"
)

// Set of error codes carried by a ValidationError. The codes are stable
// and safe to show to a client.
const (
	CodeMissingCreditOrDebit = "T01"
	CodeInvalidCreditFormat  = "T02"
	CodeInvalidDebitFormat   = "T03"
	CodeMissingTransactionID = "T04"
	CodeInvalidDate          = "D01"
	CodeTimeStampOutOfRange  = "D02"
	CodeChainCorruption      = "C01"
)

// Set of errors the ledger can produce.
var (
	ErrMissingCreditOrDebit = errors.New("transaction missing specific credit or debit type")
	ErrInvalidCreditFormat  = errors.New("transaction unexpected credit value format (n.nn)")
	ErrInvalidDebitFormat   = errors.New("transaction unexpected debit value format (n.nn)")
	ErrMissingTransactionID = errors.New("transaction missing transaction id")
	ErrTimeStampOutOfRange  = errors.New("block timestamp is in the future or too old")
	ErrChainCorruption      = errors.New("unexpected failure in chain")
	ErrBlockTampered        = errors.New("block hash does not match the block contents")
	ErrBrokenLink           = errors.New("previous block hash does not match the previous block")
	ErrMalformedHash        = errors.New("block hash is not a sha256 digest")
	ErrRebuildReason        = errors.New("rebuild requires a reason")
	ErrBlockNotFound        = errors.New("block does not exist")
)

// =============================================================================

// ValidationError is returned when a block or its transaction is rejected.
type ValidationError struct {
	Code  string
	Err   error
	Value string
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve.Value == "" {
		return fmt.Sprintf("%s: %s", ve.Code, ve.Err)
	}

	return fmt.Sprintf("%s: %s, got %q", ve.Code, ve.Err, ve.Value)
}

// Unwrap allows errors.Is to match the underlying sentinel error.
func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationError returns a copy of the ValidationError pointer.
func GetValidationError(err error) *ValidationError {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	return ve
}

// =============================================================================

// IntegrityError identifies the first block that failed verification.
type IntegrityError struct {
	Number uint64
	Err    error
}

// Error implements the error interface.
func (ie *IntegrityError) Error() string {
	return fmt.Sprintf("blk[%d]: %s", ie.Number, ie.Err)
}

// Unwrap allows errors.Is to match ErrMalformedHash, ErrBlockTampered or
// ErrBrokenLink.
func (ie *IntegrityError) Unwrap() error {
	return ie.Err
}
