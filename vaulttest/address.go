package vaulttest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/sigvault"
)

var conditionCounter uint64

// NewCondition returns a condition unique within this process. Use it
// whenever a test needs an owner or destination identity and does not
// care about the exact value.
func NewCondition() sigvault.Condition {
	n := atomic.AddUint64(&conditionCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return sigvault.NewCondition("test", "seq", data)
}

// NewAddress returns the address of a new unique condition.
func NewAddress() sigvault.Address {
	return NewCondition().Address()
}

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is
// using sigvault.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) sigvault.Address {
	t.Helper()

	addr, err := sigvault.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
