package ledger

import (
	"strings"

	"autotrack-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddProduct registers a new catalog product. SKU must be unique across the
// catalog.
func (l *Ledger) AddProduct(product model.Product) (*model.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(product.Name) == "" {
		return nil, &MissingRequiredFieldError{Field: "name"}
	}
	if strings.TrimSpace(product.SKU) == "" {
		return nil, &MissingRequiredFieldError{Field: "sku"}
	}
	for i := range l.products {
		if strings.EqualFold(l.products[i].SKU, product.SKU) {
			return nil, &DuplicateSKUError{SKU: product.SKU}
		}
	}
	if product.ID == "" {
		product.ID = "p-" + uuid.NewString()
	}
	product.BuyingPrice = round2(product.BuyingPrice)
	product.SellingPrice = round2(product.SellingPrice)
	l.products = append(l.products, product)
	created := product
	return &created, nil
}

// ProductUpdate holds the patchable fields of a catalog product. A non-nil
// Stock here is a manual inventory correction, separate from the
// sale/void flow.
type ProductUpdate struct {
	Name         *string          `json:"name"`
	SKU          *string          `json:"sku"`
	Category     *string          `json:"category"`
	BuyingPrice  *decimal.Decimal `json:"buyingPrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
	Stock        *int             `json:"stock"`
}

// UpdateProduct applies a partial update to a catalog product.
func (l *Ledger) UpdateProduct(id string, update ProductUpdate) (*model.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	product := l.findProduct(id)
	if product == nil {
		return nil, &NotFoundError{Kind: "product", ID: id}
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, &MissingRequiredFieldError{Field: "stock"}
	}
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.SKU != nil {
		product.SKU = *update.SKU
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.BuyingPrice != nil {
		product.BuyingPrice = round2(*update.BuyingPrice)
	}
	if update.SellingPrice != nil {
		product.SellingPrice = round2(*update.SellingPrice)
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	updated := *product
	return &updated, nil
}

// AddService registers a new catalog service.
func (l *Ledger) AddService(service model.Service) (*model.Service, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(service.Name) == "" {
		return nil, &MissingRequiredFieldError{Field: "name"}
	}
	if service.ID == "" {
		service.ID = "s-" + uuid.NewString()
	}
	l.services = append(l.services, service)
	created := service
	return &created, nil
}

// ServiceUpdate holds the patchable fields of a catalog service.
type ServiceUpdate struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// UpdateService applies a partial update to a catalog service.
func (l *Ledger) UpdateService(id string, update ServiceUpdate) (*model.Service, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	service := l.findService(id)
	if service == nil {
		return nil, &NotFoundError{Kind: "service", ID: id}
	}
	if update.Name != nil {
		service.Name = *update.Name
	}
	if update.Category != nil {
		service.Category = *update.Category
	}
	updated := *service
	return &updated, nil
}
