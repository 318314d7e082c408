package handler

import (
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.LedgerService
}

func NewCatalogHandler(s service.LedgerService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Products())
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateProduct(product, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": created})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var update ledger.ProductUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(c.Params("id"), update, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *CatalogHandler) GetServices(c *fiber.Ctx) error {
	return c.JSON(h.service.Services())
}

func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var svc model.Service
	if err := c.BodyParser(&svc); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateService(svc, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Service created", "data": created})
}

func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	var update ledger.ServiceUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateService(c.Params("id"), update, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Service updated", "data": updated})
}
