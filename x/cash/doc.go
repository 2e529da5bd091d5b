/*
Package cash keeps track of the funds held by accounts and exposes the
Controller interface that other extensions use to query balances and move
coins between accounts.

The multisig ledger consumes a Controller as its transfer capability. This
package ships the reference implementation that stores wallets in the same
key-value store the ledger runs on, so that a rolled back ledger operation
also rolls back any coin movement it caused.
*/
package cash
