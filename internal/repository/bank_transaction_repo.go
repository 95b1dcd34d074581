package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
)

type BankTransactionRepository struct {
	db *gorm.DB
}

func NewBankTransactionRepository(db *gorm.DB) *BankTransactionRepository {
	return &BankTransactionRepository{db: db}
}

// ListUnreconciled returns the account's unreconciled transactions in the
// inclusive window, oldest posting date first. The ordering drives the
// greedy assignment, so it is part of the contract, not cosmetics.
func (r *BankTransactionRepository) ListUnreconciled(ctx context.Context, accountID uuid.UUID, start, end time.Time) ([]models.BankTransaction, error) {
	var txs []models.BankTransaction
	err := r.db.WithContext(ctx).
		Where("bank_account_id = ? AND reconciled = ? AND posting_date BETWEEN ? AND ?",
			accountID, false, start, end).
		Order("posting_date ASC").
		Find(&txs).Error
	return txs, err
}

func (r *BankTransactionRepository) CountInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) (total, reconciled int64, err error) {
	err = r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("company_id = ? AND posting_date BETWEEN ? AND ?", companyID, start, end).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&models.BankTransaction{}).
		Where("company_id = ? AND posting_date BETWEEN ? AND ? AND reconciled = ?",
			companyID, start, end, true).
		Count(&reconciled).Error
	if err != nil {
		return 0, 0, err
	}
	return total, reconciled, nil
}
