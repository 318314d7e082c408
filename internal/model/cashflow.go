package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashFlowKind string

const (
	CashFlowExpense    CashFlowKind = "expense"
	CashFlowWithdrawal CashFlowKind = "withdrawal"
)

// CashFlowEntry records money leaving the till outside of sales: a shop
// expense or an owner withdrawal. Category is required for expenses only.
type CashFlowEntry struct {
	ID            string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Kind          CashFlowKind    `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=expense withdrawal"`
	Category      string          `gorm:"type:varchar(100)" json:"category,omitempty"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	Timestamp     time.Time       `gorm:"index;not null" json:"timestamp"`
	CreatedBy     string          `gorm:"type:varchar(64)" json:"createdBy"`
	CreatedByName string          `gorm:"type:varchar(255)" json:"createdByName"`
}
