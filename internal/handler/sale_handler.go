package handler

import (
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.LedgerService
}

func NewSaleHandler(s service.LedgerService) *SaleHandler {
	return &SaleHandler{service: s}
}

func (h *SaleHandler) GetTransactions(c *fiber.Ctx) error {
	return c.JSON(h.service.Transactions())
}

func (h *SaleHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.TransactionByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(tx)
}

func (h *SaleHandler) CreateTransaction(c *fiber.Ctx) error {
	var details ledger.SaleDetails
	if err := c.BodyParser(&details); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.PostSale(details, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale posted", "data": tx})
}

func (h *SaleHandler) UpdateTransaction(c *fiber.Ctx) error {
	var update ledger.SaleUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.EditSale(c.Params("id"), update, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale updated", "data": tx})
}

func (h *SaleHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.service.VoidSale(c.Params("id"), actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale voided"})
}

// GetPermissions reports whether the acting user may still edit or void the
// transaction, so the UI can grey out the buttons without re-deriving the
// window rule.
func (h *SaleHandler) GetPermissions(c *fiber.Ctx) error {
	canModify, err := h.service.CanModify(c.Params("id"), actor(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"canModify": canModify})
}

func (h *SaleHandler) GetCustomers(c *fiber.Ctx) error {
	return c.JSON(h.service.Customers())
}
