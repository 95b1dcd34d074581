package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
	"github.com/freightops-pro/fopsbackend-sub004/internal/services/reconciliation"
)

type BankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) *BankAccountRepository {
	return &BankAccountRepository{db: db}
}

func (r *BankAccountRepository) GetAccount(ctx context.Context, id uuid.UUID, source string) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.WithContext(ctx).
		First(&account, "id = ? AND source = ?", id, source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("account %s: %w", id, reconciliation.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
