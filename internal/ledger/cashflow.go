package ledger

import (
	"strings"

	"autotrack-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowInput is the caller-supplied part of a cash-flow entry; id,
// timestamp and author are assigned on append.
type CashFlowInput struct {
	Kind        model.CashFlowKind `json:"type" validate:"required,oneof=expense withdrawal"`
	Category    string             `json:"category"`
	Amount      decimal.Decimal    `json:"amount"`
	Description string             `json:"description"`
}

// RecordCashFlow appends an expense or withdrawal. Amount must be positive
// and expenses must carry a category; there is no state machine and no
// interaction with stock or transactions.
func (l *Ledger) RecordCashFlow(input CashFlowInput, actor Actor) (*model.CashFlowEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !input.Amount.IsPositive() {
		return nil, &MissingRequiredFieldError{Field: "amount"}
	}
	if input.Kind == model.CashFlowExpense && strings.TrimSpace(input.Category) == "" {
		return nil, &MissingRequiredFieldError{Field: "category"}
	}

	entry := model.CashFlowEntry{
		ID:            "cf-" + uuid.NewString(),
		Kind:          input.Kind,
		Category:      input.Category,
		Amount:        round2(input.Amount),
		Description:   input.Description,
		Timestamp:     l.now(),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	l.cashFlows = append([]model.CashFlowEntry{entry}, l.cashFlows...)
	return &entry, nil
}
