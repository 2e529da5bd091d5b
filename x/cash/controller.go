package cash

import (
	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
	"github.com/iov-one/sigvault/errors"
)

// Controller is the functionality needed by other extensions to work with
// account funds. This is the transfer capability the multisig ledger
// consumes: an implementation decides success or failure of a transfer and
// must leave no partial state behind on failure.
type Controller interface {
	// Balance returns the coins held by given account. A missing
	// account reports no coins.
	Balance(db sigvault.ReadOnlyKVStore, src sigvault.Address) (coin.Coins, error)

	// MoveCoins transfers the given amount from source to destination
	// account. It fails if the source is missing or underfunded.
	MoveCoins(db sigvault.KVStore, src, dest sigvault.Address, amount coin.Coin) error

	// IssueCoins creates the given amount out of thin air on the
	// destination account. Negative amounts burn existing funds.
	IssueCoins(db sigvault.KVStore, dest sigvault.Address, amount coin.Coin) error
}

// BaseController is a simple implementation of controller
// wallet must return something that supports AsSet.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController() BaseController {
	return BaseController{bucket: NewWalletBucket()}
}

// Balance returns the coins stored in the wallet of given address.
func (c BaseController) Balance(db sigvault.ReadOnlyKVStore, src sigvault.Address) (coin.Coins, error) {
	return c.bucket.Wallet(db, src)
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db sigvault.KVStore, src, dest sigvault.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %s", amount)
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Wallet(db, src)
	if err != nil {
		return errors.Wrap(err, "source wallet")
	}
	if sender.IsEmpty() {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if !sender.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", src)
	}

	// A transfer to self is a funded no-op. Without the short circuit the
	// destination wallet is loaded before the debit is saved and the
	// final save would undo the subtraction.
	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.Wallet(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination wallet")
	}

	sender, err = sender.Subtract(amount)
	if err != nil {
		return err
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}

	// save them and return
	if err := c.bucket.Save(db, src, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) IssueCoins(db sigvault.KVStore, dest sigvault.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	recipient, err := c.bucket.Wallet(db, dest)
	if err != nil {
		return err
	}
	recipient, err = recipient.Add(amount)
	if err != nil {
		return err
	}

	return c.bucket.Save(db, dest, recipient)
}
