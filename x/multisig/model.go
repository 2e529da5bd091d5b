package multisig

import (
	"fmt"

	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
	"github.com/iov-one/sigvault/errors"
	"github.com/iov-one/sigvault/orm"
)

const (
	// BucketName is where we store the ledger state
	BucketName = "multisig"

	// ConfirmationThreshold is the number of distinct owner
	// confirmations required before a transaction may execute. The
	// threshold is fixed at construction and independent of the owner
	// set size.
	ConfirmationThreshold int64 = 2

	// minOwners is the lowest accepted owner set size. The contract
	// requires strictly more than 3 owners. There is no upper bound.
	minOwners = 4
)

// Wallet is the singleton configuration of the ledger: the immutable owner
// set and the confirmation threshold. It is created once and never mutated
// afterwards.
type Wallet struct {
	ID        int64              `json:"id"`
	Owners    []sigvault.Address `json:"owners"`
	Threshold int64              `json:"threshold"`
}

var _ orm.Model = (*Wallet)(nil)

// Validate enforces owner set and threshold boundaries.
func (w *Wallet) Validate() error {
	if n := len(w.Owners); n < minOwners {
		return ErrInvalidOwnerCount.Newf("%d owners, more than 3 required", n)
	}
	seen := make(map[string]struct{}, len(w.Owners))
	for _, o := range w.Owners {
		if err := o.Validate(); err != nil {
			return errors.Wrapf(err, "owner %s", o)
		}
		if _, ok := seen[string(o)]; ok {
			return ErrDuplicateOwner.Newf("%s", o)
		}
		seen[string(o)] = struct{}{}
	}
	if w.Threshold != ConfirmationThreshold {
		return errors.Wrapf(errors.ErrModel, "threshold must be %d", ConfirmationThreshold)
	}
	return nil
}

// IsOwner returns true iff given address is part of the owner set.
func (w *Wallet) IsOwner(addr sigvault.Address) bool {
	for _, o := range w.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// Condition identifies the funds this wallet controls.
func (w *Wallet) Condition() sigvault.Condition {
	return sigvault.NewCondition("multisig", "wallet", orm.EncodeSequence(w.ID))
}

// Address is where the wallet funds are held by the cash controller.
func (w *Wallet) Address() sigvault.Address {
	return w.Condition().Address()
}

// Transaction represents one proposed outbound transfer, tracked from
// submission through execution. Once Executed flips to true the record is
// frozen, except for read queries.
type Transaction struct {
	Proposer      sigvault.Address `json:"proposer"`
	Destination   sigvault.Address `json:"destination"`
	Amount        coin.Coin        `json:"amount"`
	Executed      bool             `json:"executed,omitempty"`
	Confirmations int64            `json:"confirmations"`
}

var _ orm.Model = (*Transaction)(nil)

// Validate ensures the transaction record is well formed.
func (t *Transaction) Validate() error {
	if err := t.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	if err := t.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := t.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !t.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %s", t.Amount)
	}
	if t.Confirmations < 0 {
		return errors.Wrap(errors.ErrModel, "negative confirmation count")
	}
	return nil
}

// LedgerBucket gives typed access to the three persisted entities: the
// wallet configuration, the append-only transaction log and the
// confirmation matrix.
type LedgerBucket struct {
	orm.Bucket
	txSeq     orm.Sequence
	walletSeq orm.Sequence
}

// NewLedgerBucket initializes a LedgerBucket with the default name.
func NewLedgerBucket() LedgerBucket {
	b := orm.NewBucket(BucketName)
	return LedgerBucket{
		Bucket:    b,
		txSeq:     b.Sequence("tx"),
		walletSeq: b.Sequence("wallet"),
	}
}

var walletKey = []byte("wallet")

// Wallet loads the singleton configuration. It returns ErrNotFound when
// the ledger was never initialized in this store.
func (b LedgerBucket) Wallet(db sigvault.ReadOnlyKVStore) (*Wallet, error) {
	var w Wallet
	if err := b.One(db, walletKey, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// SaveWallet persists the configuration. This must happen exactly once,
// at construction time.
func (b LedgerBucket) SaveWallet(db sigvault.KVStore, w *Wallet) error {
	return b.Put(db, walletKey, w)
}

// Transaction loads a record by its 0-based log position. An index
// outside the log bounds fails with ErrTxNotFound.
func (b LedgerBucket) Transaction(db sigvault.ReadOnlyKVStore, id int64) (*Transaction, error) {
	var tx Transaction
	switch err := b.One(db, txKey(id), &tx); {
	case err == nil:
		return &tx, nil
	case errors.ErrNotFound.Is(err):
		return nil, ErrTxNotFound.Newf("index %d", id)
	default:
		return nil, err
	}
}

// SaveTransaction persists a record at given log position.
func (b LedgerBucket) SaveTransaction(db sigvault.KVStore, id int64, tx *Transaction) error {
	return b.Put(db, txKey(id), tx)
}

// Count returns the number of transactions appended to the log so far.
func (b LedgerBucket) Count(db sigvault.ReadOnlyKVStore) (int64, error) {
	n, _, err := b.txSeq.Latest(db)
	return n, err
}

// NextID assigns the next log position. The sequence is 1-based while
// transaction ids are 0-based positions, hence the decrement.
func (b LedgerBucket) NextID(db sigvault.KVStore) (int64, error) {
	n, err := b.txSeq.NextInt(db)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// HasConfirmation checks the confirmation matrix for an outstanding
// (transaction, owner) entry.
func (b LedgerBucket) HasConfirmation(db sigvault.ReadOnlyKVStore, id int64, owner sigvault.Address) (bool, error) {
	return b.Has(db, confKey(id, owner))
}

// SetConfirmation marks an outstanding confirmation in the matrix.
func (b LedgerBucket) SetConfirmation(db sigvault.KVStore, id int64, owner sigvault.Address) error {
	return db.Set(b.DBKey(confKey(id, owner)), []byte{1})
}

// DeleteConfirmation clears a confirmation from the matrix.
func (b LedgerBucket) DeleteConfirmation(db sigvault.KVStore, id int64, owner sigvault.Address) error {
	return b.Delete(db, confKey(id, owner))
}

func txKey(id int64) []byte {
	return append([]byte("tx:"), orm.EncodeSequence(id)...)
}

func confKey(id int64, owner sigvault.Address) []byte {
	key := append([]byte("conf:"), orm.EncodeSequence(id)...)
	return append(key, fmt.Sprintf(":%s", owner)...)
}
