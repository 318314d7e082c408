package ledger

import (
	"fmt"
	"sync"
	"time"

	"autotrack-pos/internal/model"

	"github.com/shopspring/decimal"
)

// Ledger owns the session's authoritative in-memory state: the catalog,
// posted transactions, cash-flow entries, customers and payroll records.
// Every mutation happens under one mutex so a sale is atomic from the
// caller's perspective; remote persistence mirrors the ledger afterwards
// and never participates in these invariants.
type Ledger struct {
	mu  sync.Mutex
	now func() time.Time

	products     []model.Product
	services     []model.Service
	transactions []model.Transaction // most-recent-first
	customers    []model.Customer
	cashFlows    []model.CashFlowEntry // most-recent-first
	employees    []model.Employee
	attendance   []model.Attendance
}

// State is the snapshot a Ledger boots from, either loaded from the
// persistence sink or seeded with mock data in offline mode.
type State struct {
	Products     []model.Product
	Services     []model.Service
	Transactions []model.Transaction
	Customers    []model.Customer
	CashFlows    []model.CashFlowEntry
	Employees    []model.Employee
	Attendance   []model.Attendance
}

// Actor is the acting user identity attached to every mutation.
type Actor struct {
	ID   string
	Name string
	Role model.Role
}

type Option func(*Ledger)

// WithClock overrides the wall clock, used by tests to pin the mutable window.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func New(state State, opts ...Option) *Ledger {
	l := &Ledger{
		now:          time.Now,
		products:     state.Products,
		services:     state.Services,
		transactions: state.Transactions,
		customers:    state.Customers,
		cashFlows:    state.CashFlows,
		employees:    state.Employees,
		attendance:   state.Attendance,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Products returns a copy of the current product catalog.
func (l *Ledger) Products() []model.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Product(nil), l.products...)
}

// Services returns a copy of the current service catalog.
func (l *Ledger) Services() []model.Service {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Service(nil), l.services...)
}

// Transactions returns a copy of the ledger, most recent first.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Transaction(nil), l.transactions...)
}

// TransactionByID looks up a single posted transaction.
func (l *Ledger) TransactionByID(id string) (*model.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			tx := l.transactions[i]
			return &tx, nil
		}
	}
	return nil, &NotFoundError{Kind: "transaction", ID: id}
}

// Customers returns a copy of the known customers.
func (l *Ledger) Customers() []model.Customer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Customer(nil), l.customers...)
}

// CashFlows returns a copy of the cash-flow entries, most recent first.
func (l *Ledger) CashFlows() []model.CashFlowEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.CashFlowEntry(nil), l.cashFlows...)
}

// Employees returns a copy of the payroll roster.
func (l *Ledger) Employees() []model.Employee {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Employee(nil), l.employees...)
}

// Attendance returns a copy of all attendance records.
func (l *Ledger) Attendance() []model.Attendance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Attendance(nil), l.attendance...)
}

// findProduct must be called with the mutex held.
func (l *Ledger) findProduct(id string) *model.Product {
	for i := range l.products {
		if l.products[i].ID == id {
			return &l.products[i]
		}
	}
	return nil
}

// findService must be called with the mutex held.
func (l *Ledger) findService(id string) *model.Service {
	for i := range l.services {
		if l.services[i].ID == id {
			return &l.services[i]
		}
	}
	return nil
}

// findEmployee must be called with the mutex held.
func (l *Ledger) findEmployee(id string) *model.Employee {
	for i := range l.employees {
		if l.employees[i].ID == id {
			return &l.employees[i]
		}
	}
	return nil
}

// genTxID builds the short human-readable ledger code shown on receipts,
// e.g. TX-493021. Uniqueness only matters within this ledger; on the rare
// same-millisecond collision a counter suffix is appended.
// Must be called with the mutex held.
func (l *Ledger) genTxID(ts time.Time) string {
	base := fmt.Sprintf("TX-%06d", ts.UnixMilli()%1_000_000)
	id := base
	for n := 1; l.hasTxID(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (l *Ledger) hasTxID(id string) bool {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			return true
		}
	}
	return false
}

// round2 fixes the money rounding policy: two decimal places, half away
// from zero.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
