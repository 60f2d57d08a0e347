package ledger

import "fmt"

// EventType identifies what happened inside the ledger.
type EventType string

// Set of events the ledger emits.
const (
	EventAppendAccepted  EventType = "append.accepted"
	EventAppendRejected  EventType = "append.rejected"
	EventVerifyFailed    EventType = "verify.failed"
	EventRebuild         EventType = "rebuild"
	EventChainCorruption EventType = "chain.corruption"
)

// Event describes a lifecycle change or a rejection inside the ledger. The
// ledger hands events to the configured EventHandler and never writes them
// anywhere itself.
type Event struct {
	Type   EventType `json:"type"`
	Number uint64    `json:"number,omitempty"`
	TID    string    `json:"tid,omitempty"`
	Hash   string    `json:"hash,omitempty"`
	Code   string    `json:"code,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// String implements the fmt.Stringer interface for logging.
func (ev Event) String() string {
	switch ev.Type {
	case EventAppendAccepted:
		return fmt.Sprintf("ledger: %s: blk[%d]: tid[%s]: hash[%s]", ev.Type, ev.Number, ev.TID, ev.Hash)
	case EventAppendRejected:
		return fmt.Sprintf("ledger: %s: tid[%s]: code[%s]: %s", ev.Type, ev.TID, ev.Code, ev.Detail)
	}

	return fmt.Sprintf("ledger: %s: blk[%d]: %s", ev.Type, ev.Number, ev.Detail)
}

// EventHandler receives the events produced by a Chain. Handlers are called
// while the chain is locked and must not call back into the Chain.
type EventHandler func(ev Event)
