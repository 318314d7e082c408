package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a mechanic or shop hand on the payroll. TotalDueSalary is the
// accumulated unpaid wage: attendance adds to it, salary payments deduct.
type Employee struct {
	ID             string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone          string          `gorm:"type:varchar(20)" json:"phone"`
	Position       string          `gorm:"type:varchar(100)" json:"position"`
	SalaryPerMonth decimal.Decimal `gorm:"type:decimal(12,2)" json:"salaryPerMonth"`
	TotalDueSalary decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalDueSalary"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

type AttendanceType string

const (
	AttendanceFull AttendanceType = "full"
	AttendanceHalf AttendanceType = "half"
)

// Attendance marks one employee-day. Wage is the amount earned for the day
// (zero for absent, half the day rate for a half day).
type Attendance struct {
	ID         string           `gorm:"type:varchar(64);primaryKey" json:"id"`
	EmployeeID string           `gorm:"type:varchar(64);not null;index" json:"employeeId" validate:"required"`
	Date       time.Time        `gorm:"type:date;not null;index" json:"date"`
	Status     AttendanceStatus `gorm:"type:varchar(10);not null" json:"status" validate:"required,oneof=present absent"`
	Type       AttendanceType   `gorm:"type:varchar(10)" json:"type,omitempty"`
	Wage       decimal.Decimal  `gorm:"type:decimal(12,2)" json:"wage"`
}
