package service

import (
	"errors"
	"testing"

	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/outbox"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogRepo struct {
	stockWrites map[string]int
}

func (f *fakeCatalogRepo) FindAllProducts() ([]model.Product, error) { return nil, nil }
func (f *fakeCatalogRepo) FindAllServices() ([]model.Service, error) { return nil, nil }
func (f *fakeCatalogRepo) SaveProduct(*model.Product) error          { return nil }
func (f *fakeCatalogRepo) SaveService(*model.Service) error          { return nil }
func (f *fakeCatalogRepo) SeedProducts([]model.Product) error        { return nil }
func (f *fakeCatalogRepo) SeedServices([]model.Service) error        { return nil }

func (f *fakeCatalogRepo) UpdateStock(id string, newStock int) error {
	if f.stockWrites == nil {
		f.stockWrites = map[string]int{}
	}
	f.stockWrites[id] = newStock
	return nil
}

type fakeTxRepo struct {
	insertErr error
	inserted  []model.Transaction
	deleted   []string
}

func (f *fakeTxRepo) FindAll() ([]model.Transaction, error)             { return nil, nil }
func (f *fakeTxRepo) UpdateFields(string, map[string]interface{}) error { return nil }

func (f *fakeTxRepo) Insert(tx *model.Transaction) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *tx)
	return nil
}

func (f *fakeTxRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCustomerRepo struct {
	upserts []model.Customer
}

func (f *fakeCustomerRepo) FindAll() ([]model.Customer, error) { return nil, nil }

func (f *fakeCustomerRepo) Upsert(c *model.Customer) error {
	f.upserts = append(f.upserts, *c)
	return nil
}

func saleInput() ledger.SaleDetails {
	return ledger.SaleDetails{
		CustomerName: "Jane Doe",
		Lines: []ledger.LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 2, UnitPrice: decimal.NewFromInt(35)},
		},
	}
}

func bootLedger() *ledger.Ledger {
	return ledger.New(ledger.State{
		Products: []model.Product{{
			ID: "p1", SKU: "OIL-5W30", Name: "Engine Oil 5W-30",
			BuyingPrice:  decimal.NewFromInt(15),
			SellingPrice: decimal.NewFromInt(35),
			Stock:        42,
		}},
	})
}

func TestPostSaleMirrorsThroughOutbox(t *testing.T) {
	catalog := &fakeCatalogRepo{}
	txRepo := &fakeTxRepo{}
	customers := &fakeCustomerRepo{}
	ob := outbox.New(16, nil)
	go ob.Run()

	svc := NewLedgerService(bootLedger(), ob, nil, Repos{
		Catalog: catalog, Tx: txRepo, Customer: customers,
	})

	posted, err := svc.PostSale(saleInput(), ledger.Actor{ID: "u2", Role: model.RoleManager})
	require.NoError(t, err)
	ob.Close()

	require.Len(t, customers.upserts, 1)
	assert.Equal(t, "Jane Doe", customers.upserts[0].Name)
	assert.Equal(t, 40, catalog.stockWrites["p1"])
	require.Len(t, txRepo.inserted, 1)
	assert.Equal(t, posted.ID, txRepo.inserted[0].ID)
}

func TestSinkFailureDoesNotRollBack(t *testing.T) {
	var failures []*outbox.PersistenceFailureError
	ob := outbox.New(16, func(f *outbox.PersistenceFailureError) {
		failures = append(failures, f)
	})
	go ob.Run()

	sinkErr := errors.New("connection refused")
	svc := NewLedgerService(bootLedger(), ob, nil, Repos{
		Catalog:  &fakeCatalogRepo{},
		Tx:       &fakeTxRepo{insertErr: sinkErr},
		Customer: &fakeCustomerRepo{},
	})

	posted, err := svc.PostSale(saleInput(), ledger.Actor{ID: "u2", Role: model.RoleManager})
	require.NoError(t, err, "sink failures never surface on the sale path")
	ob.Close()

	// The sale stays in the session and the failure is reported once.
	kept, err := svc.TransactionByID(posted.ID)
	require.NoError(t, err)
	assert.Equal(t, posted.ID, kept.ID)
	require.Len(t, failures, 1)
	assert.Equal(t, "transaction.insert", failures[0].Op)
	assert.ErrorIs(t, failures[0], sinkErr)
}

func TestOfflineModeDropsMirrorWrites(t *testing.T) {
	ob := outbox.NewDisabled()
	svc := NewLedgerService(bootLedger(), ob, nil, Repos{})

	_, err := svc.PostSale(saleInput(), ledger.Actor{ID: "u2", Role: model.RoleManager})
	require.NoError(t, err)
	ob.Close()

	assert.Equal(t, 3, ob.Dropped(), "customer, stock, and transaction writes all dropped")
	assert.Len(t, svc.Transactions(), 1)
}
