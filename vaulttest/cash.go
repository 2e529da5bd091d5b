package vaulttest

import (
	"github.com/iov-one/sigvault"
	"github.com/iov-one/sigvault/coin"
	"github.com/iov-one/sigvault/x/cash"
)

// CashController is a cash.Controller implementation for tests. It
// delegates to a real controller but any MoveCoins call fails with
// MoveErr when set. Use it to exercise failure paths of code that
// embeds a transfer.
type CashController struct {
	ctrl    cash.Controller
	MoveErr error
}

var _ cash.Controller = (*CashController)(nil)

// NewCashController wraps the given controller. A nil argument wraps
// the default implementation.
func NewCashController(ctrl cash.Controller) *CashController {
	if ctrl == nil {
		ctrl = cash.NewController()
	}
	return &CashController{ctrl: ctrl}
}

func (c *CashController) Balance(db sigvault.ReadOnlyKVStore, src sigvault.Address) (coin.Coins, error) {
	return c.ctrl.Balance(db, src)
}

func (c *CashController) MoveCoins(db sigvault.KVStore, src, dest sigvault.Address, amount coin.Coin) error {
	if c.MoveErr != nil {
		return c.MoveErr
	}
	return c.ctrl.MoveCoins(db, src, dest, amount)
}

func (c *CashController) IssueCoins(db sigvault.KVStore, dest sigvault.Address, amount coin.Coin) error {
	return c.ctrl.IssueCoins(db, dest, amount)
}
