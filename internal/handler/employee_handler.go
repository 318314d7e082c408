package handler

import (
	"autotrack-pos/internal/ledger"
	"autotrack-pos/internal/model"
	"autotrack-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type EmployeeHandler struct {
	service service.LedgerService
}

func NewEmployeeHandler(s service.LedgerService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	return c.JSON(h.service.Employees())
}

func (h *EmployeeHandler) GetAttendance(c *fiber.Ctx) error {
	return c.JSON(h.service.Attendance())
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var employee model.Employee
	if err := c.BodyParser(&employee); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateEmployee(employee, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": created})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	var update ledger.EmployeeUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateEmployee(c.Params("id"), update, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Employee updated", "data": updated})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.service.DeleteEmployee(c.Params("id"), actor(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}

func (h *EmployeeHandler) MarkAttendance(c *fiber.Ctx) error {
	var input ledger.AttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.MarkAttendance(input, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":    "Attendance recorded",
		"attendance": result.Attendance,
		"employee":   result.Employee,
	})
}

type paySalaryRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

func (h *EmployeeHandler) PaySalary(c *fiber.Ctx) error {
	var req paySalaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.PaySalary(c.Params("id"), req.Amount, req.Notes, actor(c))
	if err != nil {
		return domainError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":   "Salary paid",
		"cash_flow": result.Entry,
		"employee":  result.Employee,
	})
}
