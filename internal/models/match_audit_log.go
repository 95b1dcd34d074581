package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the match state recorder.
const (
	AuditActionMatch       = "match"
	AuditActionManualMatch = "manual_match"
	AuditActionUnmatch     = "unmatch"
)

type MatchAuditLog struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BankTransactionID uuid.UUID  `gorm:"type:uuid;index" json:"bank_transaction_id"`
	LedgerEntryID     *uuid.UUID `gorm:"type:uuid" json:"ledger_entry_id"`
	Action            string     `json:"action"`
	Confidence        float64    `json:"confidence"`
	Reason            string     `json:"reason"`
	PerformedBy       *uuid.UUID `gorm:"type:uuid" json:"performed_by"`
	CreatedAt         time.Time  `json:"created_at"`
}
