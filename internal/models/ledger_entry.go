package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is an internally recorded accounting movement from the
// company's own books. Created by the accounting subsystem.
type LedgerEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	EntryDate   time.Time       `gorm:"column:entry_date;index" json:"entry_date"`
	Description string          `json:"description"`

	Reconciled               bool       `gorm:"index" json:"reconciled"`
	MatchedBankTransactionID *uuid.UUID `gorm:"type:uuid" json:"matched_bank_transaction_id"`
	ReconciledAt             *time.Time `json:"reconciled_at"`

	CreatedAt time.Time `json:"created_at"`
}
