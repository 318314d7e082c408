package repository

import (
	"autotrack-pos/internal/model"

	"gorm.io/gorm"
)

type TransactionRepository interface {
	FindAll() ([]model.Transaction, error)
	Insert(tx *model.Transaction) error
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.Order("timestamp DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) Insert(tx *model.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepo) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.Transaction{}).Where("id = ?", id).Updates(fields).Error
}

func (r *transactionRepo) Delete(id string) error {
	return r.db.Delete(&model.Transaction{}, "id = ?", id).Error
}
