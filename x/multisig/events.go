package multisig

import (
	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
)

// Event is implemented by all notifications the ledger emits. Events are
// fire-and-forget: they are delivered strictly after the corresponding
// state change was committed and never for a rolled back operation.
type Event interface {
	event()
}

// SubmittedEvent notifies about a new transaction appended to the log.
// Balance carries the funds held by the wallet account at submission time.
type SubmittedEvent struct {
	Proposer      sigvault.Address
	TransactionID int64
	Amount        coin.Coin
	Balance       coin.Coins
}

// ConfirmedEvent notifies about a new outstanding confirmation.
type ConfirmedEvent struct {
	Owner         sigvault.Address
	TransactionID int64
}

// RevokedEvent notifies about a withdrawn confirmation.
type RevokedEvent struct {
	Owner         sigvault.Address
	TransactionID int64
}

// ExecutedEvent notifies that a transaction reached its terminal state and
// the transfer was performed.
type ExecutedEvent struct {
	Owner         sigvault.Address
	TransactionID int64
}

func (SubmittedEvent) event() {}
func (ConfirmedEvent) event() {}
func (RevokedEvent) event()   {}
func (ExecutedEvent) event()  {}

// Emitter receives ledger notifications. Implementations must not block
// and must not call back into the ledger.
type Emitter interface {
	Emit(Event)
}

// NopEmitter discards all notifications. It is used whenever no emitter
// was configured.
func NopEmitter() Emitter {
	return nopEmitter{}
}

type nopEmitter struct{}

func (nopEmitter) Emit(Event) {}
