package service

import (
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/outbox"
	"autotrack-pos/internal/repository"
	"autotrack-pos/internal/ws"
	"autotrack-pos/pkg/validator"

	"github.com/shopspring/decimal"
)

// LedgerService fronts the in-memory ledger: it validates input, applies the
// mutation locally (the authoritative step), queues the mirror writes on the
// outbox, and pushes live events to connected clients. A sink failure never
// rolls back what the ledger already applied.
type LedgerService interface {
	PostSale(details ledger.SaleDetails, actor ledger.Actor) (*model.Transaction, error)
	EditSale(id string, update ledger.SaleUpdate, actor ledger.Actor) (*model.Transaction, error)
	VoidSale(id string, actor ledger.Actor) error
	CanModify(id string, actor ledger.Actor) (bool, error)
	RecordCashFlow(input ledger.CashFlowInput, actor ledger.Actor) (*model.CashFlowEntry, error)

	CreateProduct(product model.Product, actor ledger.Actor) (*model.Product, error)
	UpdateProduct(id string, update ledger.ProductUpdate, actor ledger.Actor) (*model.Product, error)
	CreateService(svc model.Service, actor ledger.Actor) (*model.Service, error)
	UpdateService(id string, update ledger.ServiceUpdate, actor ledger.Actor) (*model.Service, error)

	CreateEmployee(employee model.Employee, actor ledger.Actor) (*model.Employee, error)
	UpdateEmployee(id string, update ledger.EmployeeUpdate, actor ledger.Actor) (*model.Employee, error)
	DeleteEmployee(id string, actor ledger.Actor) error
	MarkAttendance(input ledger.AttendanceInput, actor ledger.Actor) (*ledger.MarkResult, error)
	PaySalary(employeeID string, amount decimal.Decimal, notes string, actor ledger.Actor) (*ledger.PayResult, error)

	Products() []model.Product
	Services() []model.Service
	Transactions() []model.Transaction
	TransactionByID(id string) (*model.Transaction, error)
	Customers() []model.Customer
	CashFlows() []model.CashFlowEntry
	Employees() []model.Employee
	Attendance() []model.Attendance
}

type ledgerService struct {
	ledger       *ledger.Ledger
	outbox       *outbox.Outbox
	hub          *ws.Hub
	catalogRepo  repository.CatalogRepository
	txRepo       repository.TransactionRepository
	customerRepo repository.CustomerRepository
	cashFlowRepo repository.CashFlowRepository
	employeeRepo repository.EmployeeRepository
}

// Repos bundles the sink repositories. All nil in offline mode; the outbox
// drops commands before any closure runs, so the nils are never dereferenced.
type Repos struct {
	Catalog  repository.CatalogRepository
	Tx       repository.TransactionRepository
	Customer repository.CustomerRepository
	CashFlow repository.CashFlowRepository
	Employee repository.EmployeeRepository
}

func NewLedgerService(l *ledger.Ledger, ob *outbox.Outbox, hub *ws.Hub, repos Repos) LedgerService {
	return &ledgerService{
		ledger:       l,
		outbox:       ob,
		hub:          hub,
		catalogRepo:  repos.Catalog,
		txRepo:       repos.Tx,
		customerRepo: repos.Customer,
		cashFlowRepo: repos.CashFlow,
		employeeRepo: repos.Employee,
	}
}

func (s *ledgerService) broadcast(event ws.Event) {
	if s.hub == nil {
		return
	}
	go s.hub.BroadcastEvent(event)
}

func (s *ledgerService) PostSale(details ledger.SaleDetails, actor ledger.Actor) (*model.Transaction, error) {
	if err := validator.FirstError(&details); err != nil {
		return nil, err
	}

	result, err := s.ledger.PostSale(details, actor)
	if err != nil {
		return nil, err
	}

	// Mirror in causal order: customer, stock, then the transaction itself.
	if result.CustomerCreated || result.CustomerUpdated {
		customer := result.Customer
		s.outbox.Enqueue("customer.upsert", func() error {
			return s.customerRepo.Upsert(&customer)
		})
	}
	for _, change := range result.StockChanges {
		change := change
		s.outbox.Enqueue("product.stock", func() error {
			return s.catalogRepo.UpdateStock(change.ProductID, change.NewStock)
		})
	}
	tx := result.Transaction
	s.outbox.Enqueue("transaction.insert", func() error {
		return s.txRepo.Insert(&tx)
	})

	s.broadcast(ws.Event{
		Type:    "transaction_created",
		Payload: result.Transaction,
		Message: actor.Name + " posted sale " + result.Transaction.ID,
	})
	posted := result.Transaction
	return &posted, nil
}

func (s *ledgerService) EditSale(id string, update ledger.SaleUpdate, actor ledger.Actor) (*model.Transaction, error) {
	updated, err := s.ledger.EditSale(id, update, actor)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"customer_name":    updated.CustomerName,
		"customer_phone":   updated.CustomerPhone,
		"vehicle_model":    updated.VehicleModel,
		"mechanic_name":    updated.MechanicName,
		"product_discount": updated.ProductDiscount,
		"service_discount": updated.ServiceDiscount,
		"total_amount":     updated.TotalAmount,
		"total_profit":     updated.TotalProfit,
	}
	s.outbox.Enqueue("transaction.update", func() error {
		return s.txRepo.UpdateFields(id, fields)
	})

	s.broadcast(ws.Event{
		Type:    "transaction_updated",
		Payload: updated,
		Message: actor.Name + " edited sale " + updated.ID,
	})
	return updated, nil
}

func (s *ledgerService) VoidSale(id string, actor ledger.Actor) error {
	result, err := s.ledger.VoidSale(id, actor)
	if err != nil {
		return err
	}

	for _, change := range result.StockChanges {
		change := change
		s.outbox.Enqueue("product.stock", func() error {
			return s.catalogRepo.UpdateStock(change.ProductID, change.NewStock)
		})
	}
	s.outbox.Enqueue("transaction.delete", func() error {
		return s.txRepo.Delete(id)
	})

	s.broadcast(ws.Event{
		Type:    "transaction_voided",
		Payload: result.Transaction,
		Message: actor.Name + " voided sale " + result.Transaction.ID,
	})
	return nil
}

func (s *ledgerService) CanModify(id string, actor ledger.Actor) (bool, error) {
	tx, err := s.ledger.TransactionByID(id)
	if err != nil {
		return false, err
	}
	return s.ledger.CanModify(tx, actor), nil
}

func (s *ledgerService) RecordCashFlow(input ledger.CashFlowInput, actor ledger.Actor) (*model.CashFlowEntry, error) {
	if err := validator.FirstError(&input); err != nil {
		return nil, err
	}

	entry, err := s.ledger.RecordCashFlow(input, actor)
	if err != nil {
		return nil, err
	}

	stored := *entry
	s.outbox.Enqueue("cashflow.insert", func() error {
		return s.cashFlowRepo.Insert(&stored)
	})
	return entry, nil
}

func (s *ledgerService) CreateProduct(product model.Product, actor ledger.Actor) (*model.Product, error) {
	if err := validator.FirstError(&product); err != nil {
		return nil, err
	}

	created, err := s.ledger.AddProduct(product)
	if err != nil {
		return nil, err
	}

	stored := *created
	s.outbox.Enqueue("product.save", func() error {
		return s.catalogRepo.SaveProduct(&stored)
	})

	s.broadcast(ws.Event{
		Type:    "catalog_updated",
		Payload: created,
		Message: actor.Name + " created product '" + created.Name + "'",
	})
	return created, nil
}

func (s *ledgerService) UpdateProduct(id string, update ledger.ProductUpdate, actor ledger.Actor) (*model.Product, error) {
	updated, err := s.ledger.UpdateProduct(id, update)
	if err != nil {
		return nil, err
	}

	stored := *updated
	s.outbox.Enqueue("product.save", func() error {
		return s.catalogRepo.SaveProduct(&stored)
	})

	s.broadcast(ws.Event{
		Type:    "catalog_updated",
		Payload: updated,
		Message: actor.Name + " updated product '" + updated.Name + "'",
	})
	return updated, nil
}

func (s *ledgerService) CreateService(svc model.Service, actor ledger.Actor) (*model.Service, error) {
	if err := validator.FirstError(&svc); err != nil {
		return nil, err
	}

	created, err := s.ledger.AddService(svc)
	if err != nil {
		return nil, err
	}

	stored := *created
	s.outbox.Enqueue("service.save", func() error {
		return s.catalogRepo.SaveService(&stored)
	})
	return created, nil
}

func (s *ledgerService) UpdateService(id string, update ledger.ServiceUpdate, actor ledger.Actor) (*model.Service, error) {
	updated, err := s.ledger.UpdateService(id, update)
	if err != nil {
		return nil, err
	}

	stored := *updated
	s.outbox.Enqueue("service.save", func() error {
		return s.catalogRepo.SaveService(&stored)
	})
	return updated, nil
}

func (s *ledgerService) CreateEmployee(employee model.Employee, actor ledger.Actor) (*model.Employee, error) {
	if err := validator.FirstError(&employee); err != nil {
		return nil, err
	}

	created, err := s.ledger.AddEmployee(employee)
	if err != nil {
		return nil, err
	}

	stored := *created
	s.outbox.Enqueue("employee.save", func() error {
		return s.employeeRepo.Save(&stored)
	})
	return created, nil
}

func (s *ledgerService) UpdateEmployee(id string, update ledger.EmployeeUpdate, actor ledger.Actor) (*model.Employee, error) {
	updated, err := s.ledger.UpdateEmployee(id, update)
	if err != nil {
		return nil, err
	}

	stored := *updated
	s.outbox.Enqueue("employee.save", func() error {
		return s.employeeRepo.Save(&stored)
	})
	return updated, nil
}

func (s *ledgerService) DeleteEmployee(id string, actor ledger.Actor) error {
	if err := s.ledger.DeleteEmployee(id); err != nil {
		return err
	}
	s.outbox.Enqueue("employee.delete", func() error {
		return s.employeeRepo.Delete(id)
	})
	return nil
}

func (s *ledgerService) MarkAttendance(input ledger.AttendanceInput, actor ledger.Actor) (*ledger.MarkResult, error) {
	if err := validator.FirstError(&input); err != nil {
		return nil, err
	}

	result, err := s.ledger.MarkAttendance(input, actor)
	if err != nil {
		return nil, err
	}

	record := result.Attendance
	employee := result.Employee
	s.outbox.Enqueue("attendance.insert", func() error {
		return s.employeeRepo.InsertAttendance(&record)
	})
	s.outbox.Enqueue("employee.save", func() error {
		return s.employeeRepo.Save(&employee)
	})
	return result, nil
}

func (s *ledgerService) PaySalary(employeeID string, amount decimal.Decimal, notes string, actor ledger.Actor) (*ledger.PayResult, error) {
	result, err := s.ledger.PaySalary(employeeID, amount, notes, actor)
	if err != nil {
		return nil, err
	}

	entry := result.Entry
	employee := result.Employee
	s.outbox.Enqueue("cashflow.insert", func() error {
		return s.cashFlowRepo.Insert(&entry)
	})
	s.outbox.Enqueue("employee.save", func() error {
		return s.employeeRepo.Save(&employee)
	})
	return result, nil
}

func (s *ledgerService) Products() []model.Product         { return s.ledger.Products() }
func (s *ledgerService) Services() []model.Service         { return s.ledger.Services() }
func (s *ledgerService) Transactions() []model.Transaction { return s.ledger.Transactions() }
func (s *ledgerService) Customers() []model.Customer       { return s.ledger.Customers() }
func (s *ledgerService) CashFlows() []model.CashFlowEntry  { return s.ledger.CashFlows() }
func (s *ledgerService) Employees() []model.Employee       { return s.ledger.Employees() }
func (s *ledgerService) Attendance() []model.Attendance    { return s.ledger.Attendance() }

func (s *ledgerService) TransactionByID(id string) (*model.Transaction, error) {
	return s.ledger.TransactionByID(id)
}
