package models

import (
	"time"

	"github.com/google/uuid"
)

// Account sources. External accounts are synced from a bank-data provider,
// internal accounts exist only on the company's books.
const (
	AccountSourceExternal = "external"
	AccountSourceInternal = "internal"
)

// BankAccount is a linked account owned by a company. Reconciliation scopes
// every run to one account; the company is derived from it.
type BankAccount struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	Name      string    `json:"name"`
	Source    string    `gorm:"index" json:"source"`
	Mask      string    `json:"mask"`
	CreatedAt time.Time `json:"created_at"`
}
