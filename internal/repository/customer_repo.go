package repository

import (
	"autotrack-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	FindAll() ([]model.Customer, error)
	Upsert(customer *model.Customer) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Upsert(customer *model.Customer) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(customer).Error
}
