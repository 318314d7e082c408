package ledger

import (
	"strings"

	"autotrack-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineInput is one cart line as entered at the counter. The name snapshot is
// resolved from the catalog; UnitPrice is whatever price was agreed at sale
// time (services have no catalog price at all).
type LineInput struct {
	ItemID    string          `json:"itemId" validate:"required"`
	Type      model.ItemType  `json:"type" validate:"required,oneof=product service"`
	Quantity  int             `json:"quantity" validate:"required,gte=1"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SaleDetails is the full input of PostSale.
type SaleDetails struct {
	CustomerName    string          `json:"customerName" validate:"required"`
	CustomerPhone   string          `json:"customerPhone"`
	VehicleModel    string          `json:"vehicleModel"`
	MechanicName    string          `json:"mechanicName"`
	Lines           []LineInput     `json:"items" validate:"required,min=1,dive"`
	ProductDiscount decimal.Decimal `json:"productDiscount"`
	ServiceDiscount decimal.Decimal `json:"serviceDiscount"`
}

// StockChange reports a product stock level after a sale or void, so the
// persistence sink can mirror it.
type StockChange struct {
	ProductID string
	NewStock  int
}

// PostResult carries everything a successful PostSale changed.
type PostResult struct {
	Transaction     model.Transaction
	Customer        model.Customer
	CustomerCreated bool
	CustomerUpdated bool
	StockChanges    []StockChange
}

// PostSale validates and posts a sale atomically: every precondition is
// checked before the first mutation, so a failed sale leaves no trace.
// Stock is decremented per product line, the customer is resolved or created
// by case-insensitive name, totals and profit are computed with costs frozen
// from the catalog at this moment, and the transaction is prepended to the
// ledger (most recent first).
func (l *Ledger) PostSale(details SaleDetails, actor Actor) (*PostResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(details.CustomerName) == "" {
		return nil, &MissingRequiredFieldError{Field: "customerName"}
	}
	if len(details.Lines) == 0 {
		return nil, &MissingRequiredFieldError{Field: "items"}
	}
	if details.ProductDiscount.IsNegative() {
		return nil, &MissingRequiredFieldError{Field: "productDiscount"}
	}
	if details.ServiceDiscount.IsNegative() {
		return nil, &MissingRequiredFieldError{Field: "serviceDiscount"}
	}

	// Resolve every line against the live catalog first. Nothing below this
	// loop may fail once a mutation has happened.
	lines := make([]model.CartLine, 0, len(details.Lines))
	hasService := false
	for _, in := range details.Lines {
		if in.Quantity < 1 {
			return nil, &MissingRequiredFieldError{Field: "quantity"}
		}
		switch in.Type {
		case model.ItemProduct:
			product := l.findProduct(in.ItemID)
			if product == nil {
				return nil, &NotFoundError{Kind: "product", ID: in.ItemID}
			}
			if in.Quantity > product.Stock {
				return nil, &InsufficientStockError{
					Item:      product.Name,
					Requested: in.Quantity,
					Available: product.Stock,
				}
			}
			unit := round2(in.UnitPrice)
			lines = append(lines, model.CartLine{
				ItemID:    product.ID,
				Name:      product.Name,
				Type:      model.ItemProduct,
				Quantity:  in.Quantity,
				UnitPrice: unit,
				Subtotal:  round2(unit.Mul(decimal.NewFromInt(int64(in.Quantity)))),
			})
		case model.ItemService:
			service := l.findService(in.ItemID)
			if service == nil {
				return nil, &NotFoundError{Kind: "service", ID: in.ItemID}
			}
			hasService = true
			unit := round2(in.UnitPrice)
			lines = append(lines, model.CartLine{
				ItemID:    service.ID,
				Name:      service.Name,
				Type:      model.ItemService,
				Quantity:  in.Quantity,
				UnitPrice: unit,
				Subtotal:  round2(unit.Mul(decimal.NewFromInt(int64(in.Quantity)))),
			})
		default:
			return nil, &MissingRequiredFieldError{Field: "type"}
		}
	}

	if hasService {
		if strings.TrimSpace(details.MechanicName) == "" {
			return nil, &MissingRequiredFieldError{Field: "mechanicName"}
		}
		if strings.TrimSpace(details.VehicleModel) == "" {
			return nil, &MissingRequiredFieldError{Field: "vehicleModel"}
		}
	}

	// All preconditions hold: apply.
	result := &PostResult{}
	l.resolveCustomer(details.CustomerName, details.CustomerPhone, result)

	productTotal := decimal.Zero
	serviceTotal := decimal.Zero
	totalCost := decimal.Zero
	for _, line := range lines {
		if line.Type == model.ItemProduct {
			productTotal = productTotal.Add(line.Subtotal)
			product := l.findProduct(line.ItemID)
			totalCost = totalCost.Add(product.BuyingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			product.Stock -= line.Quantity
			result.StockChanges = append(result.StockChanges, StockChange{
				ProductID: product.ID,
				NewStock:  product.Stock,
			})
		} else {
			serviceTotal = serviceTotal.Add(line.Subtotal)
		}
	}

	productTotal = round2(productTotal)
	serviceTotal = round2(serviceTotal)
	totalCost = round2(totalCost)
	totalAmount := round2(productTotal.Sub(details.ProductDiscount).Add(serviceTotal.Sub(details.ServiceDiscount)))
	totalProfit := round2(totalAmount.Sub(totalCost))

	ts := l.now()
	tx := model.Transaction{
		ID:              l.genTxID(ts),
		Timestamp:       ts,
		CustomerName:    details.CustomerName,
		CustomerPhone:   details.CustomerPhone,
		VehicleModel:    details.VehicleModel,
		MechanicName:    details.MechanicName,
		Items:           lines,
		ProductTotal:    productTotal,
		ServiceTotal:    serviceTotal,
		ProductDiscount: round2(details.ProductDiscount),
		ServiceDiscount: round2(details.ServiceDiscount),
		TotalAmount:     totalAmount,
		TotalProfit:     totalProfit,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
	}
	l.transactions = append([]model.Transaction{tx}, l.transactions...)

	result.Transaction = tx
	return result, nil
}

// resolveCustomer dedups by case-insensitive name and keeps the phone number
// last-write-wins. Must be called with the mutex held.
func (l *Ledger) resolveCustomer(name, phone string, result *PostResult) {
	for i := range l.customers {
		if strings.EqualFold(l.customers[i].Name, name) {
			if phone != "" && l.customers[i].Phone != phone {
				l.customers[i].Phone = phone
				result.CustomerUpdated = true
			}
			result.Customer = l.customers[i]
			return
		}
	}
	customer := model.Customer{ID: uuid.NewString(), Name: name, Phone: phone}
	l.customers = append(l.customers, customer)
	result.Customer = customer
	result.CustomerCreated = true
}

// VoidResult carries the removed transaction and the stock restorations that
// reversed it.
type VoidResult struct {
	Transaction  model.Transaction
	StockChanges []StockChange
}

// VoidSale cancels a posted sale: every product line's stock is restored by
// item id and quantity (independent of whatever the catalog entry looks like
// now) and the transaction is removed from the ledger.
func (l *Ledger) VoidSale(id string, actor Actor) (*VoidResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Kind: "transaction", ID: id}
	}
	tx := l.transactions[idx]

	if !Modifiable(l.now(), tx.Timestamp, actor.Role) {
		return nil, &PermissionDeniedError{Action: "void", Reason: ReasonLockedWindow}
	}

	result := &VoidResult{Transaction: tx}
	for _, line := range tx.Items {
		if line.Type != model.ItemProduct {
			continue
		}
		// Restoration is by id and quantity only; a catalog entry whose
		// price or category changed since the sale still gets its units back.
		if product := l.findProduct(line.ItemID); product != nil {
			product.Stock += line.Quantity
			result.StockChanges = append(result.StockChanges, StockChange{
				ProductID: product.ID,
				NewStock:  product.Stock,
			})
		}
	}

	l.transactions = append(l.transactions[:idx], l.transactions[idx+1:]...)
	return result, nil
}

// SaleUpdate holds the mutable fields of a posted transaction. Cart lines
// are immutable after creation; nil fields are left unchanged.
type SaleUpdate struct {
	CustomerName    *string          `json:"customerName"`
	CustomerPhone   *string          `json:"customerPhone"`
	VehicleModel    *string          `json:"vehicleModel"`
	MechanicName    *string          `json:"mechanicName"`
	ProductDiscount *decimal.Decimal `json:"productDiscount"`
	ServiceDiscount *decimal.Decimal `json:"serviceDiscount"`
}

// EditSale updates customer metadata and discounts within the mutable
// window. When either discount changes, TotalAmount is recomputed from the
// frozen product/service totals and TotalProfit is recomputed with the cost
// re-summed from the immutable lines against the catalog's current buying
// prices. That cost re-derivation (rather than the cost frozen at creation)
// reproduces the behavior of the system this one replaces.
func (l *Ledger) EditSale(id string, update SaleUpdate, actor Actor) (*model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var tx *model.Transaction
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			tx = &l.transactions[i]
			break
		}
	}
	if tx == nil {
		return nil, &NotFoundError{Kind: "transaction", ID: id}
	}

	if !Modifiable(l.now(), tx.Timestamp, actor.Role) {
		return nil, &PermissionDeniedError{Action: "edit", Reason: ReasonLockedWindow}
	}

	// Every rejectable input is checked before the first assignment so a
	// failed edit leaves the transaction untouched.
	if update.ProductDiscount != nil && update.ProductDiscount.IsNegative() {
		return nil, &MissingRequiredFieldError{Field: "productDiscount"}
	}
	if update.ServiceDiscount != nil && update.ServiceDiscount.IsNegative() {
		return nil, &MissingRequiredFieldError{Field: "serviceDiscount"}
	}

	if update.CustomerName != nil && strings.TrimSpace(*update.CustomerName) != "" {
		tx.CustomerName = *update.CustomerName
	}
	if update.CustomerPhone != nil {
		tx.CustomerPhone = *update.CustomerPhone
	}
	if update.VehicleModel != nil {
		tx.VehicleModel = *update.VehicleModel
	}
	if update.MechanicName != nil {
		tx.MechanicName = *update.MechanicName
	}

	discountChanged := false
	if update.ProductDiscount != nil && !update.ProductDiscount.Equal(tx.ProductDiscount) {
		tx.ProductDiscount = round2(*update.ProductDiscount)
		discountChanged = true
	}
	if update.ServiceDiscount != nil && !update.ServiceDiscount.Equal(tx.ServiceDiscount) {
		tx.ServiceDiscount = round2(*update.ServiceDiscount)
		discountChanged = true
	}

	if discountChanged {
		tx.TotalAmount = round2(tx.ProductTotal.Sub(tx.ProductDiscount).Add(tx.ServiceTotal.Sub(tx.ServiceDiscount)))
		cost := decimal.Zero
		for _, line := range tx.Items {
			if line.Type != model.ItemProduct {
				continue
			}
			if product := l.findProduct(line.ItemID); product != nil {
				cost = cost.Add(product.BuyingPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			}
		}
		tx.TotalProfit = round2(tx.TotalAmount.Sub(cost))
	}

	updated := *tx
	return &updated, nil
}
