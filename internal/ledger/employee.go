package ledger

import (
	"fmt"
	"strings"
	"time"

	"autotrack-pos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddEmployee puts a new employee on the roster with zero due salary.
func (l *Ledger) AddEmployee(employee model.Employee) (*model.Employee, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if strings.TrimSpace(employee.Name) == "" {
		return nil, &MissingRequiredFieldError{Field: "name"}
	}
	if employee.ID == "" {
		employee.ID = "emp-" + uuid.NewString()
	}
	employee.TotalDueSalary = decimal.Zero
	l.employees = append(l.employees, employee)
	created := employee
	return &created, nil
}

// EmployeeUpdate holds the patchable fields of an employee record.
type EmployeeUpdate struct {
	Name           *string          `json:"name"`
	Phone          *string          `json:"phone"`
	Position       *string          `json:"position"`
	SalaryPerMonth *decimal.Decimal `json:"salaryPerMonth"`
}

// UpdateEmployee applies a partial update to an employee record.
func (l *Ledger) UpdateEmployee(id string, update EmployeeUpdate) (*model.Employee, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	employee := l.findEmployee(id)
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: id}
	}
	if update.Name != nil {
		employee.Name = *update.Name
	}
	if update.Phone != nil {
		employee.Phone = *update.Phone
	}
	if update.Position != nil {
		employee.Position = *update.Position
	}
	if update.SalaryPerMonth != nil {
		employee.SalaryPerMonth = round2(*update.SalaryPerMonth)
	}
	updated := *employee
	return &updated, nil
}

// DeleteEmployee removes an employee from the roster. Attendance history is
// kept for reporting.
func (l *Ledger) DeleteEmployee(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.employees {
		if l.employees[i].ID == id {
			l.employees = append(l.employees[:i], l.employees[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "employee", ID: id}
}

// AttendanceInput marks one employee-day.
type AttendanceInput struct {
	EmployeeID string                 `json:"employeeId" validate:"required"`
	Date       int64                  `json:"date"` // unix millis at midnight
	Status     model.AttendanceStatus `json:"status" validate:"required,oneof=present absent"`
	Type       model.AttendanceType   `json:"type"`
	Wage       decimal.Decimal        `json:"wage"`
}

// MarkResult carries the stored attendance record and the employee whose due
// salary absorbed the wage.
type MarkResult struct {
	Attendance model.Attendance
	Employee   model.Employee
}

// MarkAttendance records the day and adds the day's wage to the employee's
// due salary in one step.
func (l *Ledger) MarkAttendance(input AttendanceInput, _ Actor) (*MarkResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	employee := l.findEmployee(input.EmployeeID)
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: input.EmployeeID}
	}

	record := model.Attendance{
		ID:         "att-" + uuid.NewString(),
		EmployeeID: input.EmployeeID,
		Date:       time.UnixMilli(input.Date),
		Status:     input.Status,
		Type:       input.Type,
		Wage:       round2(input.Wage),
	}
	l.attendance = append(l.attendance, record)
	employee.TotalDueSalary = round2(employee.TotalDueSalary.Add(record.Wage))

	return &MarkResult{Attendance: record, Employee: *employee}, nil
}

// PayResult carries the expense entry a salary payment produced along with
// the updated employee record.
type PayResult struct {
	Entry    model.CashFlowEntry
	Employee model.Employee
}

// PaySalary records a Salary expense in the cash flow and deducts the amount
// from the employee's due salary. The due balance may go negative for an
// advance payment, matching how the shop actually operates.
func (l *Ledger) PaySalary(employeeID string, amount decimal.Decimal, notes string, actor Actor) (*PayResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	employee := l.findEmployee(employeeID)
	if employee == nil {
		return nil, &NotFoundError{Kind: "employee", ID: employeeID}
	}
	if !amount.IsPositive() {
		return nil, &MissingRequiredFieldError{Field: "amount"}
	}

	description := fmt.Sprintf("Salary Payment to %s.", employee.Name)
	if notes != "" {
		description += " " + notes
	}
	entry := model.CashFlowEntry{
		ID:            "cf-" + uuid.NewString(),
		Kind:          model.CashFlowExpense,
		Category:      "Salary",
		Amount:        round2(amount),
		Description:   description,
		Timestamp:     l.now(),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
	}
	l.cashFlows = append([]model.CashFlowEntry{entry}, l.cashFlows...)
	employee.TotalDueSalary = round2(employee.TotalDueSalary.Sub(amount))

	return &PayResult{Entry: entry, Employee: *employee}, nil
}
