package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BankTransaction is a money movement reported by an external bank-data
// provider for a linked account. Rows are created by the bank-sync worker;
// this subsystem only ever touches the reconciliation fields.
type BankTransaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BankAccountID uuid.UUID       `gorm:"type:uuid;index" json:"bank_account_id"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;index" json:"company_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4)" json:"amount"`
	PostingDate   time.Time       `gorm:"column:posting_date;index" json:"posting_date"`
	Description   string          `json:"description"`
	MerchantName  string          `json:"merchant_name"`
	Pending       bool            `json:"pending"`

	Reconciled           bool           `gorm:"index" json:"reconciled"`
	MatchedLedgerEntryID *uuid.UUID     `gorm:"type:uuid" json:"matched_ledger_entry_id"`
	ReconciledAt         *time.Time     `json:"reconciled_at"`
	ReconciledBy         *uuid.UUID     `gorm:"type:uuid" json:"reconciled_by"`
	ConfidenceScore      float64        `json:"confidence_score"`
	MatchDetails         datatypes.JSON `json:"match_details"`

	CreatedAt time.Time `json:"created_at"`
}
