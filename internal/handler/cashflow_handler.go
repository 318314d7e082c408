package handler

import (
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CashFlowHandler struct {
	service service.LedgerService
}

func NewCashFlowHandler(s service.LedgerService) *CashFlowHandler {
	return &CashFlowHandler{service: s}
}

func (h *CashFlowHandler) GetCashFlows(c *fiber.Ctx) error {
	return c.JSON(h.service.CashFlows())
}

func (h *CashFlowHandler) CreateCashFlow(c *fiber.Ctx) error {
	var input ledger.CashFlowInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.RecordCashFlow(input, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Cash flow recorded", "data": entry})
}
