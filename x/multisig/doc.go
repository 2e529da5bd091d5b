/*
Package multisig implements an M-of-N transaction authorization ledger.

A fixed set of owner addresses shares control over a funded wallet
account. Any owner may submit an outbound transfer, which enters an
append-only log as a pending transaction. Other owners confirm or revoke
their approval, and once a transaction holds the confirmation threshold
of distinct approvals any owner may execute it. Execution marks the
record and moves the coins in one atomic step, so a transaction never
pays out twice and a failed transfer leaves no trace.

The ledger keeps everything in a key-value store and performs each
operation on a cache wrap, which it discards on failure and writes on
success. Successful operations are reported through an Emitter.
*/
package multisig
