package repository

import (
	"autotrack-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository interface {
	FindAll() ([]model.Employee, error)
	FindAllAttendance() ([]model.Attendance, error)
	Save(employee *model.Employee) error
	Delete(id string) error
	InsertAttendance(record *model.Attendance) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) FindAll() ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.Order("name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) FindAllAttendance() ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.Order("date ASC").Find(&records).Error
	return records, err
}

func (r *employeeRepo) Save(employee *model.Employee) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(employee).Error
}

func (r *employeeRepo) Delete(id string) error {
	return r.db.Delete(&model.Employee{}, "id = ?", id).Error
}

func (r *employeeRepo) InsertAttendance(record *model.Attendance) error {
	return r.db.Create(record).Error
}
