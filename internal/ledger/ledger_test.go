package ledger

import (
	"testing"
	"time"

	"autotrack-pos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	counterActor = Actor{ID: "u2", Name: "Bob Manager", Role: model.RoleManager}
	adminActor   = Actor{ID: "u1", Name: "Alice Admin", Role: model.RoleAdmin}
)

func price(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func testState() State {
	return State{
		Products: []model.Product{
			{ID: "p1", SKU: "OIL-5W30", Name: "Engine Oil 5W-30", Category: "Fluids",
				BuyingPrice: price("15"), SellingPrice: price("35"), Stock: 42},
			{ID: "p2", SKU: "BRK-PAD", Name: "Brake Pads", Category: "Brakes",
				BuyingPrice: price("25"), SellingPrice: price("65"), Stock: 12},
		},
		Services: []model.Service{
			{ID: "s1", Name: "Brake Inspection", Category: "Brakes"},
		},
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestPostSaleTotals(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	l := New(testState(), WithClock(fixedClock(now)))

	result, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		MechanicName: "Raj",
		VehicleModel: "Civic 2019",
		Lines: []LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 2, UnitPrice: price("35")},
			{ItemID: "s1", Type: model.ItemService, Quantity: 1, UnitPrice: price("50")},
		},
		ProductDiscount: price("5"),
	}, counterActor)
	require.NoError(t, err)

	tx := result.Transaction
	assert.True(t, tx.ProductTotal.Equal(price("70")), "product total %s", tx.ProductTotal)
	assert.True(t, tx.ServiceTotal.Equal(price("50")), "service total %s", tx.ServiceTotal)
	assert.True(t, tx.TotalAmount.Equal(price("115")), "total amount %s", tx.TotalAmount)
	assert.True(t, tx.TotalProfit.Equal(price("85")), "total profit %s", tx.TotalProfit)
	assert.Regexp(t, `^TX-\d{6}$`, tx.ID)
	assert.Equal(t, now, tx.Timestamp)
	assert.Equal(t, "u2", tx.CreatedBy)

	// Stock decremented, customer created.
	assert.Equal(t, 40, l.Products()[0].Stock)
	require.Len(t, result.StockChanges, 1)
	assert.Equal(t, StockChange{ProductID: "p1", NewStock: 40}, result.StockChanges[0])
	assert.True(t, result.CustomerCreated)
	require.Len(t, l.Customers(), 1)
	assert.Equal(t, "Jane Doe", l.Customers()[0].Name)
}

func TestPostSaleStockBoundary(t *testing.T) {
	l := New(testState())

	// Quantity equal to stock is allowed.
	_, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		Lines:        []LineInput{{ItemID: "p2", Type: model.ItemProduct, Quantity: 12, UnitPrice: price("65")}},
	}, counterActor)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Products()[1].Stock)

	// One more than stock is rejected with the item details.
	_, err = l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		Lines:        []LineInput{{ItemID: "p1", Type: model.ItemProduct, Quantity: 43, UnitPrice: price("35")}},
	}, counterActor)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Engine Oil 5W-30", stockErr.Item)
	assert.Equal(t, 43, stockErr.Requested)
	assert.Equal(t, 42, stockErr.Available)
}

func TestPostSaleFailureLeavesNoTrace(t *testing.T) {
	l := New(testState())

	// Second line fails, so nothing from the first line may stick.
	_, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		Lines: []LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 2, UnitPrice: price("35")},
			{ItemID: "p2", Type: model.ItemProduct, Quantity: 13, UnitPrice: price("65")},
		},
	}, counterActor)
	require.Error(t, err)

	assert.Equal(t, 42, l.Products()[0].Stock)
	assert.Equal(t, 12, l.Products()[1].Stock)
	assert.Empty(t, l.Transactions())
	assert.Empty(t, l.Customers())
}

func TestPostSaleServiceRequiresMechanicAndVehicle(t *testing.T) {
	l := New(testState())
	details := SaleDetails{
		CustomerName: "Jane Doe",
		VehicleModel: "Civic 2019",
		Lines:        []LineInput{{ItemID: "s1", Type: model.ItemService, Quantity: 1, UnitPrice: price("50")}},
	}

	_, err := l.PostSale(details, counterActor)
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "mechanicName", missing.Field)

	details.MechanicName = "Raj"
	details.VehicleModel = ""
	_, err = l.PostSale(details, counterActor)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "vehicleModel", missing.Field)

	// Product-only sale needs neither.
	_, err = l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		Lines:        []LineInput{{ItemID: "p1", Type: model.ItemProduct, Quantity: 1, UnitPrice: price("35")}},
	}, counterActor)
	assert.NoError(t, err)
}

func TestPostSaleCustomerDedup(t *testing.T) {
	l := New(testState())
	sale := func(name, phone string) {
		t.Helper()
		_, err := l.PostSale(SaleDetails{
			CustomerName:  name,
			CustomerPhone: phone,
			Lines:         []LineInput{{ItemID: "p1", Type: model.ItemProduct, Quantity: 1, UnitPrice: price("35")}},
		}, counterActor)
		require.NoError(t, err)
	}

	sale("Jane Doe", "555-0001")
	sale("jane doe", "555-0002")
	sale("JANE DOE", "")

	customers := l.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "Jane Doe", customers[0].Name)
	// Last non-empty phone wins; the empty one does not clear it.
	assert.Equal(t, "555-0002", customers[0].Phone)
}

func TestVoidSaleRestoresStock(t *testing.T) {
	l := New(testState())
	result, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		MechanicName: "Raj",
		VehicleModel: "Civic 2019",
		Lines: []LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 3, UnitPrice: price("35")},
			{ItemID: "s1", Type: model.ItemService, Quantity: 1, UnitPrice: price("50")},
		},
	}, counterActor)
	require.NoError(t, err)
	assert.Equal(t, 39, l.Products()[0].Stock)

	voided, err := l.VoidSale(result.Transaction.ID, counterActor)
	require.NoError(t, err)
	assert.Equal(t, 42, l.Products()[0].Stock)
	assert.Empty(t, l.Transactions())
	require.Len(t, voided.StockChanges, 1)
	assert.Equal(t, StockChange{ProductID: "p1", NewStock: 42}, voided.StockChanges[0])

	_, err = l.VoidSale("TX-000000", counterActor)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "transaction", notFound.Kind)
}

func TestVoidSaleOutsideWindow(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }
	l := New(testState(), WithClock(clock))

	result, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		Lines:        []LineInput{{ItemID: "p1", Type: model.ItemProduct, Quantity: 1, UnitPrice: price("35")}},
	}, counterActor)
	require.NoError(t, err)

	at = at.Add(MutableWindow)
	_, err = l.VoidSale(result.Transaction.ID, counterActor)
	var denied *PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "void", denied.Action)
	assert.Equal(t, ReasonLockedWindow, denied.Reason)
	assert.Equal(t, 41, l.Products()[0].Stock, "denied void must not touch stock")

	// Admin bypasses the lock.
	_, err = l.VoidSale(result.Transaction.ID, adminActor)
	require.NoError(t, err)
	assert.Equal(t, 42, l.Products()[0].Stock)
}

func TestEditSaleRecomputesFromCurrentCosts(t *testing.T) {
	l := New(testState())
	result, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		MechanicName: "Raj",
		VehicleModel: "Civic 2019",
		Lines: []LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 2, UnitPrice: price("35")},
			{ItemID: "s1", Type: model.ItemService, Quantity: 1, UnitPrice: price("50")},
		},
		ProductDiscount: price("5"),
	}, counterActor)
	require.NoError(t, err)

	// Buying price rises after the sale; an edit re-derives cost from the
	// catalog as it is now, not as it was.
	newCost := price("20")
	_, err = l.UpdateProduct("p1", ProductUpdate{BuyingPrice: &newCost})
	require.NoError(t, err)

	discount := price("10")
	updated, err := l.EditSale(result.Transaction.ID, SaleUpdate{ProductDiscount: &discount}, counterActor)
	require.NoError(t, err)
	// 70 - 10 + 50 = 110; cost 2 * 20 = 40; profit 70.
	assert.True(t, updated.TotalAmount.Equal(price("110")), "total %s", updated.TotalAmount)
	assert.True(t, updated.TotalProfit.Equal(price("70")), "profit %s", updated.TotalProfit)

	// Metadata edits leave the money columns alone.
	name := "Janet Doe"
	updated, err = l.EditSale(result.Transaction.ID, SaleUpdate{CustomerName: &name}, counterActor)
	require.NoError(t, err)
	assert.Equal(t, "Janet Doe", updated.CustomerName)
	assert.True(t, updated.TotalProfit.Equal(price("70")))
}

func TestEditSaleFailureLeavesNoTrace(t *testing.T) {
	l := New(testState())
	result, err := l.PostSale(SaleDetails{
		CustomerName: "Jane Doe",
		MechanicName: "Raj",
		VehicleModel: "Civic 2019",
		Lines: []LineInput{
			{ItemID: "p1", Type: model.ItemProduct, Quantity: 2, UnitPrice: price("35")},
			{ItemID: "s1", Type: model.ItemService, Quantity: 1, UnitPrice: price("50")},
		},
		ProductDiscount: price("5"),
	}, counterActor)
	require.NoError(t, err)

	// A valid name and product discount alongside a negative service
	// discount: the whole edit must be rejected with nothing applied.
	name := "Mallory"
	productDiscount := price("10")
	serviceDiscount := price("-1")
	_, err = l.EditSale(result.Transaction.ID, SaleUpdate{
		CustomerName:    &name,
		ProductDiscount: &productDiscount,
		ServiceDiscount: &serviceDiscount,
	}, counterActor)
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "serviceDiscount", missing.Field)

	kept, err := l.TransactionByID(result.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", kept.CustomerName)
	assert.True(t, kept.ProductDiscount.Equal(price("5")), "discount %s", kept.ProductDiscount)
	assert.True(t, kept.TotalAmount.Equal(price("115")), "total %s", kept.TotalAmount)
	assert.True(t, kept.TotalProfit.Equal(price("85")), "profit %s", kept.TotalProfit)
}

func TestUpdateProductFailureLeavesNoTrace(t *testing.T) {
	l := New(testState())

	name := "House Oil"
	sellingPrice := price("40")
	badStock := -1
	_, err := l.UpdateProduct("p1", ProductUpdate{
		Name:         &name,
		SellingPrice: &sellingPrice,
		Stock:        &badStock,
	})
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "stock", missing.Field)

	kept := l.Products()[0]
	assert.Equal(t, "Engine Oil 5W-30", kept.Name)
	assert.True(t, kept.SellingPrice.Equal(price("35")), "price %s", kept.SellingPrice)
	assert.Equal(t, 42, kept.Stock)
}

func TestRecordCashFlow(t *testing.T) {
	l := New(State{})

	_, err := l.RecordCashFlow(CashFlowInput{
		Kind: model.CashFlowExpense, Category: "Rent", Amount: price("500"),
	}, counterActor)
	require.NoError(t, err)

	// Expense without a category is rejected, withdrawal does not need one.
	_, err = l.RecordCashFlow(CashFlowInput{
		Kind: model.CashFlowExpense, Amount: price("10"),
	}, counterActor)
	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "category", missing.Field)

	_, err = l.RecordCashFlow(CashFlowInput{
		Kind: model.CashFlowWithdrawal, Amount: price("100"),
	}, counterActor)
	require.NoError(t, err)

	_, err = l.RecordCashFlow(CashFlowInput{
		Kind: model.CashFlowWithdrawal, Amount: price("0"),
	}, counterActor)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "amount", missing.Field)

	entries := l.CashFlows()
	require.Len(t, entries, 2)
	// Most recent first.
	assert.Equal(t, model.CashFlowWithdrawal, entries[0].Kind)
	assert.Equal(t, "Rent", entries[1].Category)
}

func TestAttendanceAndSalary(t *testing.T) {
	l := New(State{})
	emp, err := l.AddEmployee(model.Employee{Name: "Raj", Position: "Mechanic", SalaryPerMonth: price("2400")})
	require.NoError(t, err)
	assert.True(t, emp.TotalDueSalary.IsZero())

	mark, err := l.MarkAttendance(AttendanceInput{
		EmployeeID: emp.ID,
		Date:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC).UnixMilli(),
		Status:     model.AttendancePresent,
		Type:       model.AttendanceFull,
		Wage:       price("80"),
	}, counterActor)
	require.NoError(t, err)
	assert.True(t, mark.Employee.TotalDueSalary.Equal(price("80")))

	// Overpaying is allowed; the balance records the advance.
	pay, err := l.PaySalary(emp.ID, price("100"), "March advance", counterActor)
	require.NoError(t, err)
	assert.True(t, pay.Employee.TotalDueSalary.Equal(price("-20")))
	assert.Equal(t, model.CashFlowExpense, pay.Entry.Kind)
	assert.Equal(t, "Salary", pay.Entry.Category)
	assert.Equal(t, "Salary Payment to Raj. March advance", pay.Entry.Description)
	require.Len(t, l.CashFlows(), 1)

	_, err = l.PaySalary("emp-missing", price("10"), "", counterActor)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestAddProductDuplicateSKU(t *testing.T) {
	l := New(testState())
	_, err := l.AddProduct(model.Product{Name: "Other Oil", SKU: "oil-5w30"})
	var dup *DuplicateSKUError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "oil-5w30", dup.SKU)

	created, err := l.AddProduct(model.Product{Name: "Coolant", SKU: "COOL-1", BuyingPrice: price("3.333")})
	require.NoError(t, err)
	assert.True(t, created.BuyingPrice.Equal(price("3.33")), "prices are stored at 2dp, got %s", created.BuyingPrice)
}

func TestStatsWindowIsHalfOpen(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }
	l := New(testState(), WithClock(clock))

	for day := 0; day < 3; day++ {
		_, err := l.PostSale(SaleDetails{
			CustomerName: "Jane Doe",
			Lines:        []LineInput{{ItemID: "p1", Type: model.ItemProduct, Quantity: 1, UnitPrice: price("35")}},
		}, counterActor)
		require.NoError(t, err)
		at = at.AddDate(0, 0, 1)
	}

	from := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	stats := l.Stats(from, to)
	// The sale at exactly `to` falls outside the window.
	assert.Equal(t, 2, stats.TotalTransactions)
	assert.True(t, stats.TotalRevenue.Equal(price("70")))

	series := l.RevenueSeries(from, to.AddDate(0, 0, 1))
	require.Len(t, series, 3)
	assert.Equal(t, "2026-03-10", series[0].Date, "series runs oldest first")
	assert.True(t, series[0].Revenue.Equal(price("35")))
}

func TestLowStockProducts(t *testing.T) {
	l := New(State{Products: []model.Product{
		{ID: "p1", SKU: "A", Name: "At threshold", Stock: LowStockThreshold},
		{ID: "p2", SKU: "B", Name: "Below", Stock: LowStockThreshold - 1},
	}})
	low := l.LowStockProducts()
	require.Len(t, low, 1)
	assert.Equal(t, "Below", low[0].Name)
	assert.Equal(t, 1, l.Stats(time.Time{}, time.Now()).LowStockCount)
}
