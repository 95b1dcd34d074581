package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
	"github.com/freightops-pro/fopsbackend-sub004/internal/services/matching"
)

// DefaultAutoApproveThreshold is the confidence above which a candidate pair
// is committed without human review.
const DefaultAutoApproveThreshold = 0.95

type Service struct {
	accounts BankAccountStore
	bankTxs  BankTransactionStore
	entries  LedgerEntryStore
	recorder MatchRecorder
	audit    AuditLogStore

	// runLocks serializes reconciliation runs per account. Two concurrent
	// runs over the same account could both pick the same ledger entry
	// before either commits; the recorder's reconciled=false guard would
	// catch the second commit, but serializing avoids the wasted run.
	runLocks sync.Map // uuid.UUID -> *sync.Mutex
}

func NewService(
	accounts BankAccountStore,
	bankTxs BankTransactionStore,
	entries LedgerEntryStore,
	recorder MatchRecorder,
	audit AuditLogStore,
) *Service {
	return &Service{
		accounts: accounts,
		bankTxs:  bankTxs,
		entries:  entries,
		recorder: recorder,
		audit:    audit,
	}
}

// ConfidenceBuckets is the histogram of committed match confidences.
type ConfidenceBuckets struct {
	Exact  int `json:"exact"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ReconciliationResult reports one reconcile run. Notes carries per-pair
// commit failures that did not abort the run.
type ReconciliationResult struct {
	Matched                   int                      `json:"matched"`
	UnmatchedBank             int                      `json:"unmatched_bank"`
	UnmatchedLedger           int                      `json:"unmatched_ledger"`
	ConfidenceScores          ConfidenceBuckets        `json:"confidence_scores"`
	UnmatchedBankTransactions []models.BankTransaction `json:"unmatched_bank_transactions"`
	UnmatchedLedgerEntries    []models.LedgerEntry     `json:"unmatched_ledger_entries"`
	Notes                     []string                 `json:"notes,omitempty"`
}

// Summary aggregates persisted reconciliation state for a company and window,
// cumulative across all historical runs.
type Summary struct {
	TotalBankTransactions int64   `json:"total_bank_transactions"`
	TotalLedgerEntries    int64   `json:"total_ledger_entries"`
	Matched               int64   `json:"matched"`
	UnmatchedBank         int64   `json:"unmatched_bank"`
	UnmatchedLedger       int64   `json:"unmatched_ledger"`
	MatchRate             float64 `json:"match_rate"`
}

// ReconcileAccount matches unreconciled bank transactions for the account and
// window against the company's unreconciled ledger entries.
//
// Assignment is greedy and order-dependent: transactions are processed in
// posting-date order, each takes its best-scoring still-available entry, and
// a consumed entry is unavailable to later transactions even if a later one
// would have scored higher against it.
//
// The run is not one database transaction. Each qualifying pair commits
// atomically on its own; a failed commit is reported in Notes and the run
// continues with the next transaction.
func (s *Service) ReconcileAccount(ctx context.Context, accountID uuid.UUID, accountType string, start, end time.Time, threshold float64) (*ReconciliationResult, error) {
	if err := validateAccountType(accountType); err != nil {
		return nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}

	mu := s.runLock(accountID)
	mu.Lock()
	defer mu.Unlock()

	account, err := s.accounts.GetAccount(ctx, accountID, accountType)
	if err != nil {
		return nil, err
	}

	txs, err := s.bankTxs.ListUnreconciled(ctx, accountID, start, end)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListUnreconciled(ctx, account.CompanyID, start, end)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{}
	consumed := make([]bool, len(entries))

	for i := range txs {
		// Abort points sit between iterations; no single pair is ever left
		// half-written.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tx := &txs[i]

		bestIdx := -1
		var best matching.Result
		for j := range entries {
			if consumed[j] {
				continue
			}
			score := matching.Score(tx, &entries[j])
			if bestIdx == -1 || score.Confidence > best.Confidence {
				bestIdx, best = j, score
			}
		}

		if bestIdx == -1 || best.Confidence < threshold {
			result.UnmatchedBankTransactions = append(result.UnmatchedBankTransactions, *tx)
			continue
		}

		entry := &entries[bestIdx]
		if err := s.recorder.RecordMatch(ctx, tx.ID, entry.ID, best.Confidence, best.Reason); err != nil {
			// Only a concurrent claim makes the entry unavailable; after a
			// transient failure it is still unreconciled and stays in the
			// pool so the reviewer sees it on the unmatched side.
			if errors.Is(err, ErrAlreadyReconciled) {
				consumed[bestIdx] = true
			}
			result.Notes = append(result.Notes, fmt.Sprintf("bank transaction %s: %v", tx.ID, err))
			result.UnmatchedBankTransactions = append(result.UnmatchedBankTransactions, *tx)
			continue
		}

		consumed[bestIdx] = true
		result.Matched++
		bucketConfidence(&result.ConfidenceScores, best.Confidence)
	}

	for j := range entries {
		if !consumed[j] {
			result.UnmatchedLedgerEntries = append(result.UnmatchedLedgerEntries, entries[j])
		}
	}
	result.UnmatchedBank = len(result.UnmatchedBankTransactions)
	result.UnmatchedLedger = len(result.UnmatchedLedgerEntries)

	log.Printf("reconcile account=%s window=%s..%s matched=%d unmatched_bank=%d unmatched_ledger=%d",
		accountID, start.Format("2006-01-02"), end.Format("2006-01-02"),
		result.Matched, result.UnmatchedBank, result.UnmatchedLedger)

	return result, nil
}

// ManualMatch pairs a bank transaction with a ledger entry on a reviewer's
// say-so. Confidence is recorded as 1.0 regardless of similarity.
func (s *Service) ManualMatch(ctx context.Context, accountType string, bankTxID, ledgerEntryID, actorID uuid.UUID) error {
	if err := validateAccountType(accountType); err != nil {
		return err
	}
	return s.recorder.RecordManualMatch(ctx, bankTxID, ledgerEntryID, actorID)
}

// Unmatch clears the transaction's current match on both sides. A
// transaction with no match is a no-op. The account type is advisory here
// and only validated when the caller supplies one.
func (s *Service) Unmatch(ctx context.Context, accountType string, bankTxID uuid.UUID) error {
	if accountType != "" {
		if err := validateAccountType(accountType); err != nil {
			return err
		}
	}
	return s.recorder.Unmatch(ctx, bankTxID)
}

// Summarize computes the cumulative reconciliation figures for a company and
// window from persisted flags, independent of any in-memory run.
func (s *Service) Summarize(ctx context.Context, companyID uuid.UUID, start, end time.Time) (*Summary, error) {
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}

	totalBank, matchedBank, err := s.bankTxs.CountInWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}
	totalLedger, matchedLedger, err := s.entries.CountInWindow(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		TotalBankTransactions: totalBank,
		TotalLedgerEntries:    totalLedger,
		Matched:               matchedBank,
		UnmatchedBank:         totalBank - matchedBank,
		UnmatchedLedger:       totalLedger - matchedLedger,
	}
	if totalBank > 0 {
		summary.MatchRate = float64(matchedBank) / float64(totalBank)
	}
	return summary, nil
}

// UnmatchedForReview lists both unreconciled sides for an account and window,
// for presentation to a human reviewer.
func (s *Service) UnmatchedForReview(ctx context.Context, accountID uuid.UUID, accountType string, start, end time.Time) ([]models.BankTransaction, []models.LedgerEntry, error) {
	if err := validateAccountType(accountType); err != nil {
		return nil, nil, err
	}
	if err := validateWindow(start, end); err != nil {
		return nil, nil, err
	}

	account, err := s.accounts.GetAccount(ctx, accountID, accountType)
	if err != nil {
		return nil, nil, err
	}
	txs, err := s.bankTxs.ListUnreconciled(ctx, accountID, start, end)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.entries.ListUnreconciled(ctx, account.CompanyID, start, end)
	if err != nil {
		return nil, nil, err
	}
	return txs, entries, nil
}

// AuditTrail returns the match/unmatch history for a bank transaction.
func (s *Service) AuditTrail(ctx context.Context, bankTxID uuid.UUID) ([]models.MatchAuditLog, error) {
	return s.audit.ListForTransaction(ctx, bankTxID)
}

func (s *Service) runLock(accountID uuid.UUID) *sync.Mutex {
	mu, _ := s.runLocks.LoadOrStore(accountID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func validateAccountType(accountType string) error {
	switch accountType {
	case models.AccountSourceExternal, models.AccountSourceInternal:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAccountType, accountType)
}

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return fmt.Errorf("%w: %s..%s", ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}

// Committed confidences land in exactly one bucket. The epsilon absorbs
// float addition when all three signals fire at full weight.
func bucketConfidence(b *ConfidenceBuckets, confidence float64) {
	switch {
	case confidence >= 1.0-1e-9:
		b.Exact++
	case confidence >= 0.95:
		b.High++
	case confidence >= 0.80:
		b.Medium++
	default:
		b.Low++
	}
}
