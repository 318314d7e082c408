package repository

import (
	"autotrack-pos/internal/model"

	"gorm.io/gorm"
)

type CashFlowRepository interface {
	FindAll() ([]model.CashFlowEntry, error)
	Insert(entry *model.CashFlowEntry) error
}

type cashFlowRepo struct {
	db *gorm.DB
}

func NewCashFlowRepo(db *gorm.DB) CashFlowRepository {
	return &cashFlowRepo{db}
}

func (r *cashFlowRepo) FindAll() ([]model.CashFlowEntry, error) {
	var entries []model.CashFlowEntry
	err := r.db.Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

func (r *cashFlowRepo) Insert(entry *model.CashFlowEntry) error {
	return r.db.Create(entry).Error
}
