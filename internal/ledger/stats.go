package ledger

import (
	"time"

	"autotrack-pos/internal/model"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as low
// stock on the dashboard and in insight summaries.
const LowStockThreshold = 10

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalProfit       decimal.Decimal `json:"totalProfit"`
	TotalTransactions int             `json:"totalTransactions"`
	LowStockCount     int             `json:"lowStockCount"`
}

// Stats reduces the ledger over [from, to): revenue and profit sums plus the
// transaction count in range, and the current low-stock count.
func (l *Ledger) Stats(from, to time.Time) DashboardStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := DashboardStats{
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	for i := range l.transactions {
		ts := l.transactions[i].Timestamp
		if ts.Before(from) || !ts.Before(to) {
			continue
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(l.transactions[i].TotalAmount)
		stats.TotalProfit = stats.TotalProfit.Add(l.transactions[i].TotalProfit)
		stats.TotalTransactions++
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)
	stats.TotalProfit = round2(stats.TotalProfit)

	for i := range l.products {
		if l.products[i].Stock < LowStockThreshold {
			stats.LowStockCount++
		}
	}
	return stats
}

// RevenuePoint is one day of the dashboard revenue series.
type RevenuePoint struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// RevenueSeries buckets transactions per calendar day over [from, to),
// oldest day first. Days without sales are omitted.
func (l *Ledger) RevenueSeries(from, to time.Time) []RevenuePoint {
	l.mu.Lock()
	defer l.mu.Unlock()

	byDay := make(map[string]*RevenuePoint)
	var order []string
	for i := len(l.transactions) - 1; i >= 0; i-- {
		tx := &l.transactions[i]
		if tx.Timestamp.Before(from) || !tx.Timestamp.Before(to) {
			continue
		}
		day := tx.Timestamp.Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &RevenuePoint{Date: day, Revenue: decimal.Zero, Profit: decimal.Zero}
			byDay[day] = point
			order = append(order, day)
		}
		point.Revenue = point.Revenue.Add(tx.TotalAmount)
		point.Profit = point.Profit.Add(tx.TotalProfit)
	}

	series := make([]RevenuePoint, 0, len(order))
	for _, day := range order {
		point := byDay[day]
		point.Revenue = round2(point.Revenue)
		point.Profit = round2(point.Profit)
		series = append(series, *point)
	}
	return series
}

// LowStockProducts returns the products currently under the threshold.
func (l *Ledger) LowStockProducts() []model.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	var low []model.Product
	for i := range l.products {
		if l.products[i].Stock < LowStockThreshold {
			low = append(low, l.products[i])
		}
	}
	return low
}
