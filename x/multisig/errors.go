package multisig

import "github.com/iov-one/sigvault/errors"

// Error codes
// multisig takes 1030-1039
var (
	// ErrNotOwner is returned when a mutating operation is attempted by
	// an identity that is not part of the owner set.
	ErrNotOwner = errors.Register(1030, "not an owner")

	// ErrTxNotFound is returned when the given index references no
	// transaction in the log.
	ErrTxNotFound = errors.Register(1031, "transaction not found")

	// ErrAlreadyConfirmed is returned when an owner confirms a
	// transaction it already holds an outstanding confirmation on.
	ErrAlreadyConfirmed = errors.Register(1032, "already confirmed")

	// ErrNotConfirmed is returned when revoking a confirmation that was
	// never given or was already revoked.
	ErrNotConfirmed = errors.Register(1033, "not confirmed")

	// ErrAlreadyExecuted is returned when mutating a transaction that
	// reached its terminal state.
	ErrAlreadyExecuted = errors.Register(1034, "already executed")

	// ErrInsufficientConfirmations is returned when execute is attempted
	// below the confirmation threshold.
	ErrInsufficientConfirmations = errors.Register(1035, "insufficient confirmations")

	// ErrTransferFailed is returned when the transfer capability declined
	// the coin movement. This is the only error the caller may remedy
	// externally and then safely retry the execute call.
	ErrTransferFailed = errors.Register(1036, "transfer failed")

	// ErrInvalidOwnerCount rejects construction with too few owners.
	ErrInvalidOwnerCount = errors.Register(1037, "invalid owner count")

	// ErrDuplicateOwner rejects construction with a repeated identity.
	ErrDuplicateOwner = errors.Register(1038, "duplicate owner")
)
