package multisig

import (
	"sync"

	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
	"github.com/iov-one/sigvault/errors"
	"github.com/iov-one/sigvault/x/cash"
)

// Ledger implements the transaction approval state machine. A fixed owner
// set jointly approves outbound transfers: a transaction moves from pending
// to executed only once it collected the confirmation threshold of distinct
// owner approvals, executes at most once, and counts no owner twice.
//
// All state lives in the provided key-value store. Every mutating operation
// runs on a cache wrap of that store: on any failure the cache is discarded
// and the observable state is exactly the pre-call state; only on success
// the cache is written and the corresponding event emitted. A mutex spans
// each whole operation, including the embedded transfer call, so a ledger
// instance is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	bucket  LedgerBucket
	cash    cash.Controller
	emitter Emitter
}

// NewLedger initializes the ledger state in the given store and returns a
// handle to operate on it. The owner list must contain more than 3 pairwise
// distinct addresses; the confirmation threshold is fixed at 2. On failure
// no partial state is left behind.
func NewLedger(db sigvault.CacheableKVStore, owners []sigvault.Address, ctrl cash.Controller, emitter Emitter) (*Ledger, error) {
	l := newLedger(ctrl, emitter)

	cache := db.CacheWrap()
	if err := l.initialize(cache, owners); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return l, nil
}

// LoadLedger returns a handle to a ledger that was initialized in the
// given store before. It fails with ErrNotFound if there is none.
func LoadLedger(db sigvault.CacheableKVStore, ctrl cash.Controller, emitter Emitter) (*Ledger, error) {
	l := newLedger(ctrl, emitter)
	if _, err := l.bucket.Wallet(db); err != nil {
		return nil, err
	}
	return l, nil
}

func newLedger(ctrl cash.Controller, emitter Emitter) *Ledger {
	if emitter == nil {
		emitter = NopEmitter()
	}
	return &Ledger{
		bucket:  NewLedgerBucket(),
		cash:    ctrl,
		emitter: emitter,
	}
}

func (l *Ledger) initialize(db sigvault.KVStore, owners []sigvault.Address) error {
	if ok, err := l.bucket.Has(db, walletKey); err != nil {
		return err
	} else if ok {
		return errors.Wrap(errors.ErrState, "already initialized")
	}

	id, err := l.bucket.walletSeq.NextInt(db)
	if err != nil {
		return err
	}
	wallet := &Wallet{
		ID:        id,
		Owners:    append([]sigvault.Address(nil), owners...),
		Threshold: ConfirmationThreshold,
	}
	// Put validates, surfacing ErrInvalidOwnerCount and ErrDuplicateOwner.
	return l.bucket.SaveWallet(db, wallet)
}

// Submit appends a new pending transaction to the log and returns its
// 0-based index. The caller must be an owner. A fresh transaction starts
// with zero confirmations, including the proposer's.
func (l *Ledger) Submit(db sigvault.CacheableKVStore, caller, destination sigvault.Address, amount coin.Coin) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := db.CacheWrap()
	ev, err := l.submit(cache, caller, destination, amount)
	if err != nil {
		cache.Discard()
		return 0, err
	}
	if err := cache.Write(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	l.emitter.Emit(ev)
	return ev.TransactionID, nil
}

func (l *Ledger) submit(db sigvault.KVStore, caller, destination sigvault.Address, amount coin.Coin) (SubmittedEvent, error) {
	var ev SubmittedEvent

	wallet, err := l.bucket.Wallet(db)
	if err != nil {
		return ev, err
	}
	if !wallet.IsOwner(caller) {
		return ev, ErrNotOwner.Newf("%s", caller)
	}

	id, err := l.bucket.NextID(db)
	if err != nil {
		return ev, err
	}
	tx := &Transaction{
		Proposer:      caller,
		Destination:   destination,
		Amount:        amount,
		Executed:      false,
		Confirmations: 0,
	}
	// SaveTransaction validates, rejecting bad destinations and amounts.
	if err := l.bucket.SaveTransaction(db, id, tx); err != nil {
		return ev, err
	}

	balance, err := l.cash.Balance(db, wallet.Address())
	if err != nil {
		return ev, errors.Wrap(err, "wallet balance")
	}
	return SubmittedEvent{
		Proposer:      caller,
		TransactionID: id,
		Amount:        amount,
		Balance:       balance,
	}, nil
}

// Confirm registers the caller's approval on a pending transaction.
// Each owner can hold at most one outstanding confirmation per
// transaction.
func (l *Ledger) Confirm(db sigvault.CacheableKVStore, caller sigvault.Address, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := db.CacheWrap()
	ev, err := l.confirm(cache, caller, id)
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	l.emitter.Emit(ev)
	return nil
}

func (l *Ledger) confirm(db sigvault.KVStore, caller sigvault.Address, id int64) (ConfirmedEvent, error) {
	var ev ConfirmedEvent

	tx, err := l.bucket.Transaction(db, id)
	if err != nil {
		return ev, err
	}
	wallet, err := l.bucket.Wallet(db)
	if err != nil {
		return ev, err
	}
	if !wallet.IsOwner(caller) {
		return ev, ErrNotOwner.Newf("%s", caller)
	}
	if ok, err := l.bucket.HasConfirmation(db, id, caller); err != nil {
		return ev, err
	} else if ok {
		return ev, ErrAlreadyConfirmed.Newf("owner %s on index %d", caller, id)
	}
	if tx.Executed {
		return ev, ErrAlreadyExecuted.Newf("index %d", id)
	}

	if err := l.bucket.SetConfirmation(db, id, caller); err != nil {
		return ev, err
	}
	tx.Confirmations++
	if err := l.bucket.SaveTransaction(db, id, tx); err != nil {
		return ev, err
	}
	return ConfirmedEvent{Owner: caller, TransactionID: id}, nil
}

// Revoke withdraws the caller's outstanding confirmation from a pending
// transaction. There is no separate owner check: anyone without an
// outstanding confirmation is rejected by the same condition.
func (l *Ledger) Revoke(db sigvault.CacheableKVStore, caller sigvault.Address, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := db.CacheWrap()
	ev, err := l.revoke(cache, caller, id)
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	l.emitter.Emit(ev)
	return nil
}

func (l *Ledger) revoke(db sigvault.KVStore, caller sigvault.Address, id int64) (RevokedEvent, error) {
	var ev RevokedEvent

	tx, err := l.bucket.Transaction(db, id)
	if err != nil {
		return ev, err
	}
	if tx.Executed {
		return ev, ErrAlreadyExecuted.Newf("index %d", id)
	}
	if ok, err := l.bucket.HasConfirmation(db, id, caller); err != nil {
		return ev, err
	} else if !ok {
		return ev, ErrNotConfirmed.Newf("owner %s on index %d", caller, id)
	}

	if err := l.bucket.DeleteConfirmation(db, id, caller); err != nil {
		return ev, err
	}
	tx.Confirmations--
	if err := l.bucket.SaveTransaction(db, id, tx); err != nil {
		return ev, err
	}
	return RevokedEvent{Owner: caller, TransactionID: id}, nil
}

// Execute performs the transfer of a transaction that collected enough
// confirmations and marks it executed. The mark and the coin movement
// commit as one unit: when the transfer capability declines, the whole
// operation is rolled back and may be retried once the external cause is
// remedied.
func (l *Ledger) Execute(db sigvault.CacheableKVStore, caller sigvault.Address, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cache := db.CacheWrap()
	ev, err := l.execute(cache, caller, id)
	if err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	l.emitter.Emit(ev)
	return nil
}

func (l *Ledger) execute(db sigvault.KVStore, caller sigvault.Address, id int64) (ExecutedEvent, error) {
	var ev ExecutedEvent

	wallet, err := l.bucket.Wallet(db)
	if err != nil {
		return ev, err
	}
	if !wallet.IsOwner(caller) {
		return ev, ErrNotOwner.Newf("%s", caller)
	}
	tx, err := l.bucket.Transaction(db, id)
	if err != nil {
		return ev, err
	}
	if tx.Executed {
		return ev, ErrAlreadyExecuted.Newf("index %d", id)
	}
	if tx.Confirmations < wallet.Threshold {
		return ev, ErrInsufficientConfirmations.Newf("%d of %d", tx.Confirmations, wallet.Threshold)
	}

	tx.Executed = true
	if err := l.bucket.SaveTransaction(db, id, tx); err != nil {
		return ev, err
	}
	if err := l.cash.MoveCoins(db, wallet.Address(), tx.Destination, tx.Amount); err != nil {
		return ev, errors.Wrapf(ErrTransferFailed, "%s", err)
	}
	return ExecutedEvent{Owner: caller, TransactionID: id}, nil
}

// Owners returns a copy of the owner set, in construction order.
func (l *Ledger) Owners(db sigvault.ReadOnlyKVStore) ([]sigvault.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	wallet, err := l.bucket.Wallet(db)
	if err != nil {
		return nil, err
	}
	return append([]sigvault.Address(nil), wallet.Owners...), nil
}

// WalletAddress returns the account the ledger spends from. The
// environment must fund this address for transactions to execute.
func (l *Ledger) WalletAddress(db sigvault.ReadOnlyKVStore) (sigvault.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	wallet, err := l.bucket.Wallet(db)
	if err != nil {
		return nil, err
	}
	return wallet.Address(), nil
}

// TransactionCount returns the length of the transaction log.
func (l *Ledger) TransactionCount(db sigvault.ReadOnlyKVStore) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bucket.Count(db)
}

// Transaction returns the full record stored at given log position.
func (l *Ledger) Transaction(db sigvault.ReadOnlyKVStore, id int64) (*Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bucket.Transaction(db, id)
}

// IsConfirmed checks if given owner holds an outstanding confirmation on
// given transaction. Any combination that does not exist reports false,
// it is never an error.
func (l *Ledger) IsConfirmed(db sigvault.ReadOnlyKVStore, id int64, owner sigvault.Address) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.bucket.HasConfirmation(db, id, owner)
}
