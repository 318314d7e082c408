package handler

import (
	"time"

	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
	ledger  service.LedgerService
}

func NewDashboardHandler(s service.DashboardService, l service.LedgerService) *DashboardHandler {
	return &DashboardHandler{service: s, ledger: l}
}

// rangeWindow converts a range query param into a [from, to) window ending now.
func rangeWindow(r string) (time.Time, time.Time) {
	to := time.Now()
	var from time.Time
	switch r {
	case "1m":
		from = to.AddDate(0, -1, 0)
	case "3m":
		from = to.AddDate(0, -3, 0)
	case "6m":
		from = to.AddDate(0, -6, 0)
	case "12m":
		from = to.AddDate(0, -12, 0)
	default: // "7d"
		from = to.AddDate(0, 0, -7)
	}
	return from, to
}

// GetDashboardStats returns overview statistics for the requested range.
// Query params: range (7d|1m|3m|6m|12m, default 7d)
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	from, to := rangeWindow(c.Query("range", "7d"))
	return c.JSON(h.service.GetStats(from, to))
}

// GetRevenueSeries returns per-day revenue buckets for charts.
func (h *DashboardHandler) GetRevenueSeries(c *fiber.Ctx) error {
	period := c.Query("range", "7d")
	from, to := rangeWindow(period)
	return c.JSON(fiber.Map{
		"period": period,
		"data":   h.service.GetRevenueSeries(from, to),
	})
}

// GetLowStock returns products below the restock threshold.
func (h *DashboardHandler) GetLowStock(c *fiber.Ctx) error {
	low := make([]model.Product, 0)
	for _, p := range h.ledger.Products() {
		if p.Stock < ledger.LowStockThreshold {
			low = append(low, p)
		}
	}
	return c.JSON(fiber.Map{
		"threshold": ledger.LowStockThreshold,
		"data":      low,
	})
}
