package reconciliation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
)

// The service depends on these store contracts rather than on a database
// session, so the matching logic is testable without postgres. The gorm
// implementations live in internal/repository.

type BankAccountStore interface {
	// GetAccount resolves an account by id and source ("external" or
	// "internal"). Returns ErrNotFound when no such account exists.
	GetAccount(ctx context.Context, id uuid.UUID, source string) (*models.BankAccount, error)
}

type BankTransactionStore interface {
	// ListUnreconciled returns unreconciled transactions for the account
	// inside the inclusive window, ordered by posting date ascending.
	ListUnreconciled(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]models.BankTransaction, error)

	// CountInWindow returns (total, reconciled) counts for the company's
	// transactions in the window, regardless of reconciliation run.
	CountInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) (total, reconciled int64, err error)
}

type LedgerEntryStore interface {
	// ListUnreconciled returns unreconciled entries for the company inside
	// the inclusive window, ordered by entry date ascending.
	ListUnreconciled(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]models.LedgerEntry, error)

	// CountInWindow returns (total, reconciled) counts for the company's
	// entries in the window.
	CountInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) (total, reconciled int64, err error)
}

// MatchRecorder performs the persistent match/unmatch state transitions.
// Every operation is atomic with respect to both sides of the pair.
type MatchRecorder interface {
	// RecordMatch marks the pair matched. Fails with ErrAlreadyReconciled
	// when either side is already matched, ErrNotFound when either side is
	// missing; in both cases neither side is modified.
	RecordMatch(ctx context.Context, bankTxID, ledgerEntryID uuid.UUID, confidence float64, reason string) error

	// RecordManualMatch is RecordMatch with confidence fixed at 1.0 and the
	// acting user stamped on the bank transaction.
	RecordManualMatch(ctx context.Context, bankTxID, ledgerEntryID, actorID uuid.UUID) error

	// Unmatch clears both sides of the transaction's current match. A
	// transaction with no match is a no-op, not an error.
	Unmatch(ctx context.Context, bankTxID uuid.UUID) error
}

type AuditLogStore interface {
	ListForTransaction(ctx context.Context, bankTxID uuid.UUID) ([]models.MatchAuditLog, error)
}
