package model

import "github.com/shopspring/decimal"

type ItemType string

const (
	ItemProduct ItemType = "product"
	ItemService ItemType = "service"
)

// Product is a stocked catalog item. Prices are fixed on the catalog entry;
// Stock is only ever mutated through the ledger (sale decrements, void restores).
type Product struct {
	ID           string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	SKU          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category     string          `gorm:"type:varchar(100)" json:"category"`
	BuyingPrice  decimal.Decimal `gorm:"type:decimal(12,2)" json:"buyingPrice"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"sellingPrice"`
	Stock        int             `gorm:"default:0" json:"stock" validate:"gte=0"`
}

// Service is a catalog item with no stored price and no stock; the price is
// decided per sale when the line is entered.
type Service struct {
	ID       string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string `gorm:"type:varchar(100)" json:"category"`
}
