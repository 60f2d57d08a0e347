package ledger

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// currency matches an unsigned amount with exactly two decimal places.
var currency = regexp.MustCompile(`^\d+\.\d{2}$`)

// IsValidCurrency reports whether the value has the n.nn format.
func IsValidCurrency(value string) bool {
	return currency.MatchString(value)
}

// =============================================================================

// Transaction is the payload recorded inside a block. A nil Credit or Debit
// means the field is absent. An empty TID means the id is absent.
type Transaction struct {
	TID    string  `json:"tid,omitempty"`
	Credit *string `json:"credit,omitempty"`
	Debit  *string `json:"debit,omitempty"`
	Memo   string  `json:"memo,omitempty"`
}

// NewCredit constructs a credit transaction.
func NewCredit(tid string, amount string) Transaction {
	return Transaction{TID: tid, Credit: &amount}
}

// NewDebit constructs a debit transaction.
func NewDebit(tid string, amount string) Transaction {
	return Transaction{TID: tid, Debit: &amount}
}

// Validate checks the transaction has an id and a well formed credit or
// debit. The checks run in that order and the first failure is returned.
// Having both a credit and a debit is not an error on its own.
func (tx Transaction) Validate() error {
	if tx.TID == "" {
		return &ValidationError{Code: CodeMissingTransactionID, Err: ErrMissingTransactionID}
	}

	if tx.Credit == nil && tx.Debit == nil {
		return &ValidationError{Code: CodeMissingCreditOrDebit, Err: ErrMissingCreditOrDebit}
	}

	if tx.Credit != nil && !IsValidCurrency(*tx.Credit) {
		return &ValidationError{Code: CodeInvalidCreditFormat, Err: ErrInvalidCreditFormat, Value: *tx.Credit}
	}

	if tx.Debit != nil && !IsValidCurrency(*tx.Debit) {
		return &ValidationError{Code: CodeInvalidDebitFormat, Err: ErrInvalidDebitFormat, Value: *tx.Debit}
	}

	return nil
}

// CreditValue returns the credit amount, or zero if there is no credit or
// the value can't be parsed.
func (tx Transaction) CreditValue() decimal.Decimal {
	return amount(tx.Credit)
}

// DebitValue returns the debit amount, or zero if there is no debit or
// the value can't be parsed.
func (tx Transaction) DebitValue() decimal.Decimal {
	return amount(tx.Debit)
}

// String implements the fmt.Stringer interface for logging.
func (tx Transaction) String() string {
	switch {
	case tx.Credit != nil:
		return fmt.Sprintf("%s:credit:%s", tx.TID, *tx.Credit)
	case tx.Debit != nil:
		return fmt.Sprintf("%s:debit:%s", tx.TID, *tx.Debit)
	case tx.Memo != "":
		return tx.Memo
	}

	return tx.TID
}

// clone returns a copy that shares no memory with the original so a
// caller can't change a transaction after it is stored in a block.
func (tx Transaction) clone() Transaction {
	if tx.Credit != nil {
		credit := *tx.Credit
		tx.Credit = &credit
	}

	if tx.Debit != nil {
		debit := *tx.Debit
		tx.Debit = &debit
	}

	return tx
}

func amount(value *string) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(*value)
	if err != nil {
		return decimal.Zero
	}

	return d
}
