package reconciliation

import "errors"

// Error taxonomy surfaced to callers. Stores and the recorder wrap these so
// handlers can map them with errors.Is.
var (
	// ErrNotFound covers accounts, bank transactions and ledger entries that
	// do not exist or are outside the caller's scope.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyReconciled rejects matching a side that is already matched.
	ErrAlreadyReconciled = errors.New("already reconciled")

	// ErrInvalidRange rejects an inverted date window before any query runs.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidThreshold rejects an auto-approve threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid auto-approve threshold")

	// ErrUnknownAccountType rejects account types other than
	// "external" and "internal".
	ErrUnknownAccountType = errors.New("unknown account type")
)
