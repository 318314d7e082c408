package handler

import (
	"autotrack-pos/internal/insight"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InsightHandler struct {
	generator *insight.Generator
	service   service.LedgerService
}

func NewInsightHandler(g *insight.Generator, s service.LedgerService) *InsightHandler {
	return &InsightHandler{generator: g, service: s}
}

func (h *InsightHandler) GetBusinessInsights(c *fiber.Ctx) error {
	report := h.generator.BusinessInsights(h.service.Transactions(), h.service.Products())
	return c.JSON(fiber.Map{"insight": report})
}

func (h *InsightHandler) GetPricingAnalysis(c *fiber.Ctx) error {
	products := h.service.Products()
	for _, p := range products {
		if p.ID == c.Params("id") {
			return c.JSON(fiber.Map{"analysis": h.generator.PricingAnalysis(p)})
		}
	}
	return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
}
