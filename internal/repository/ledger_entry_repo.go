package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
)

type LedgerEntryRepository struct {
	db *gorm.DB
}

func NewLedgerEntryRepository(db *gorm.DB) *LedgerEntryRepository {
	return &LedgerEntryRepository{db: db}
}

func (r *LedgerEntryRepository) ListUnreconciled(ctx context.Context, companyID uuid.UUID, start, end time.Time) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND reconciled = ? AND entry_date BETWEEN ? AND ?",
			companyID, false, start, end).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *LedgerEntryRepository) CountInWindow(ctx context.Context, companyID uuid.UUID, start, end time.Time) (total, reconciled int64, err error) {
	err = r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("company_id = ? AND entry_date BETWEEN ? AND ?", companyID, start, end).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("company_id = ? AND entry_date BETWEEN ? AND ? AND reconciled = ?",
			companyID, start, end, true).
		Count(&reconciled).Error
	if err != nil {
		return 0, 0, err
	}
	return total, reconciled, nil
}
