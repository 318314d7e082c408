package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartLine is one line item within a transaction, frozen at sale time.
// Subtotal is always Quantity * UnitPrice rounded to two decimal places.
type CartLine struct {
	ItemID    string          `json:"itemId" validate:"required"`
	Name      string          `json:"name"`
	Type      ItemType        `json:"type" validate:"required,oneof=product service"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Transaction is a posted sale. Items are immutable after creation; only the
// customer metadata and the two discounts may change through an edit, and the
// derived totals are recomputed whenever a discount changes.
type Transaction struct {
	ID            string                        `gorm:"type:varchar(32);primaryKey" json:"id"`
	Timestamp     time.Time                     `gorm:"index;not null" json:"timestamp"`
	CustomerName  string                        `gorm:"type:varchar(255);not null" json:"customerName" validate:"required"`
	CustomerPhone string                        `gorm:"type:varchar(20)" json:"customerPhone,omitempty"`
	VehicleModel  string                        `gorm:"type:varchar(100)" json:"vehicleModel,omitempty"`
	MechanicName  string                        `gorm:"type:varchar(100)" json:"mechanicName,omitempty"`
	Items         datatypes.JSONSlice[CartLine] `gorm:"type:jsonb" json:"items"`

	ProductTotal    decimal.Decimal `gorm:"type:decimal(12,2)" json:"productTotal"`
	ServiceTotal    decimal.Decimal `gorm:"type:decimal(12,2)" json:"serviceTotal"`
	ProductDiscount decimal.Decimal `gorm:"type:decimal(12,2)" json:"productDiscount"`
	ServiceDiscount decimal.Decimal `gorm:"type:decimal(12,2)" json:"serviceDiscount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	TotalProfit     decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalProfit"`

	CreatedBy     string `gorm:"type:varchar(64)" json:"createdBy"`
	CreatedByName string `gorm:"type:varchar(255)" json:"createdByName"`
}

// ProductLines returns the product lines of the transaction in order.
func (t *Transaction) ProductLines() []CartLine {
	var lines []CartLine
	for _, line := range t.Items {
		if line.Type == ItemProduct {
			lines = append(lines, line)
		}
	}
	return lines
}

// HasServiceLines reports whether any line is a service line.
func (t *Transaction) HasServiceLines() bool {
	for _, line := range t.Items {
		if line.Type == ItemService {
			return true
		}
	}
	return false
}
