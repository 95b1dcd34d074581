package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
	"github.com/freightops-pro/fopsbackend-sub004/internal/services/reconciliation"
)

// ManualMatchReason is recorded on every reviewer-initiated match.
const ManualMatchReason = "Manual match by user"

// MatchStateRepository is the sole mutator of reconciliation state. Every
// operation runs in one database transaction and flips both sides of the
// pair or neither. Double-matching is guarded by conditional updates on
// reconciled = false rather than row locks, so concurrent writers lose the
// race cleanly instead of blocking.
type MatchStateRepository struct {
	db *gorm.DB
}

func NewMatchStateRepository(db *gorm.DB) *MatchStateRepository {
	return &MatchStateRepository{db: db}
}

func (r *MatchStateRepository) RecordMatch(ctx context.Context, bankTxID, ledgerEntryID uuid.UUID, confidence float64, reason string) error {
	return r.record(ctx, bankTxID, ledgerEntryID, confidence, reason, models.AuditActionMatch, nil)
}

func (r *MatchStateRepository) RecordManualMatch(ctx context.Context, bankTxID, ledgerEntryID, actorID uuid.UUID) error {
	return r.record(ctx, bankTxID, ledgerEntryID, 1.0, ManualMatchReason, models.AuditActionManualMatch, &actorID)
}

func (r *MatchStateRepository) record(ctx context.Context, bankTxID, ledgerEntryID uuid.UUID, confidence float64, reason, action string, actorID *uuid.UUID) error {
	now := time.Now().UTC()
	details, err := json.Marshal(map[string]interface{}{
		"ledger_entry_id": ledgerEntryID.String(),
		"confidence":      confidence,
		"reason":          reason,
	})
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.BankTransaction{}).
			Where("id = ? AND reconciled = ?", bankTxID, false).
			Updates(map[string]interface{}{
				"reconciled":              true,
				"matched_ledger_entry_id": ledgerEntryID,
				"reconciled_at":           now,
				"reconciled_by":           actorID,
				"confidence_score":        confidence,
				"match_details":           datatypes.JSON(details),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return guardFailure(tx, "bank transaction", bankTxID, &models.BankTransaction{})
		}

		res = tx.Model(&models.LedgerEntry{}).
			Where("id = ? AND reconciled = ?", ledgerEntryID, false).
			Updates(map[string]interface{}{
				"reconciled":                  true,
				"matched_bank_transaction_id": bankTxID,
				"reconciled_at":               now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return guardFailure(tx, "ledger entry", ledgerEntryID, &models.LedgerEntry{})
		}

		return tx.Create(&models.MatchAuditLog{
			ID:                uuid.New(),
			BankTransactionID: bankTxID,
			LedgerEntryID:     &ledgerEntryID,
			Action:            action,
			Confidence:        confidence,
			Reason:            reason,
			PerformedBy:       actorID,
			CreatedAt:         now,
		}).Error
	})
}

func (r *MatchStateRepository) Unmatch(ctx context.Context, bankTxID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bankTx models.BankTransaction
		if err := tx.First(&bankTx, "id = ?", bankTxID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("bank transaction %s: %w", bankTxID, reconciliation.ErrNotFound)
			}
			return err
		}
		if bankTx.MatchedLedgerEntryID == nil {
			// Nothing to unmatch; valid no-op.
			return nil
		}
		ledgerEntryID := *bankTx.MatchedLedgerEntryID

		if err := tx.Model(&models.BankTransaction{}).
			Where("id = ?", bankTxID).
			Updates(map[string]interface{}{
				"reconciled":              false,
				"matched_ledger_entry_id": nil,
				"reconciled_at":           nil,
				"reconciled_by":           nil,
				"confidence_score":        0,
				"match_details":           nil,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.LedgerEntry{}).
			Where("id = ?", ledgerEntryID).
			Updates(map[string]interface{}{
				"reconciled":                  false,
				"matched_bank_transaction_id": nil,
				"reconciled_at":               nil,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&models.MatchAuditLog{
			ID:                uuid.New(),
			BankTransactionID: bankTxID,
			LedgerEntryID:     &ledgerEntryID,
			Action:            models.AuditActionUnmatch,
			CreatedAt:         time.Now().UTC(),
		}).Error
	})
}

func (r *MatchStateRepository) ListForTransaction(ctx context.Context, bankTxID uuid.UUID) ([]models.MatchAuditLog, error) {
	var logs []models.MatchAuditLog
	err := r.db.WithContext(ctx).
		Where("bank_transaction_id = ?", bankTxID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

// guardFailure explains why a conditional update hit zero rows: the row is
// either missing or already reconciled. Returning an error rolls the whole
// transaction back, so the other side is never left half-matched.
func guardFailure(tx *gorm.DB, side string, id uuid.UUID, dest interface{}) error {
	err := tx.First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", side, id, reconciliation.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%s %s: %w", side, id, reconciliation.ErrAlreadyReconciled)
}
