package cash

import (
	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
	"github.com/iov-one/sigvault/errors"
	"github.com/iov-one/sigvault/orm"
)

// BucketName is where we store the wallets
const BucketName = "cash"

// Set is the model stored per account. It keeps the coins owned by a
// single address.
type Set struct {
	Coins coin.Coins `json:"coins,omitempty"`
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in valid, normalized form.
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// WalletBucket is a type-safe wrapper around orm.Bucket that stores
// one Set per account address.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a WalletBucket with the default name.
func NewWalletBucket() WalletBucket {
	return WalletBucket{Bucket: orm.NewBucket(BucketName)}
}

// Wallet returns the coins stored for given address. A missing wallet is
// not an error and reports no coins.
func (b WalletBucket) Wallet(db sigvault.ReadOnlyKVStore, addr sigvault.Address) (coin.Coins, error) {
	var set Set
	switch err := b.One(db, addr, &set); {
	case err == nil:
		return set.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}

// Save persists the coins for given address. An empty wallet is removed
// from the store instead of being persisted.
func (b WalletBucket) Save(db sigvault.KVStore, addr sigvault.Address, coins coin.Coins) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if coins.IsEmpty() {
		return b.Delete(db, addr)
	}
	return b.Put(db, addr, &Set{Coins: coins})
}
