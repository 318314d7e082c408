package handler

import (
	"errors"

	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"

	"github.com/gofiber/fiber/v2"
)

// actor reads the acting user identity set by the auth middleware.
func actor(c *fiber.Ctx) ledger.Actor {
	a := ledger.Actor{ID: "system", Name: "Unknown", Role: model.RoleManager}
	if id, ok := c.Locals("user_id").(string); ok {
		a.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok {
		a.Name = name
	}
	if role, ok := c.Locals("user_role").(string); ok {
		a.Role = model.Role(role)
	}
	return a
}

// domainError maps the ledger error taxonomy onto HTTP responses.
func domainError(c *fiber.Ctx, err error) error {
	var stockErr *ledger.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     stockErr.Error(),
			"item":      stockErr.Item,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	}
	var fieldErr *ledger.MissingRequiredFieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fieldErr.Error(),
			"field": fieldErr.Field,
		})
	}
	var permErr *ledger.PermissionDeniedError
	if errors.As(err, &permErr) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  permErr.Error(),
			"action": permErr.Action,
			"reason": permErr.Reason,
		})
	}
	var notFoundErr *ledger.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Error()})
	}
	var skuErr *ledger.DuplicateSKUError
	if errors.As(err, &skuErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": skuErr.Error()})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
