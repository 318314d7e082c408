package repository

import (
	"autotrack-pos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	FindAllProducts() ([]model.Product, error)
	FindAllServices() ([]model.Service, error)
	SaveProduct(product *model.Product) error
	SaveService(service *model.Service) error
	UpdateStock(id string, newStock int) error
	SeedProducts(products []model.Product) error
	SeedServices(services []model.Service) error
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

func (r *catalogRepo) FindAllProducts() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepo) FindAllServices() ([]model.Service, error) {
	var services []model.Service
	err := r.db.Order("name ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepo) SaveProduct(product *model.Product) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(product).Error
}

func (r *catalogRepo) SaveService(service *model.Service) error {
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(service).Error
}

func (r *catalogRepo) UpdateStock(id string, newStock int) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).Update("stock", newStock).Error
}

func (r *catalogRepo) SeedProducts(products []model.Product) error {
	return r.db.Create(&products).Error
}

func (r *catalogRepo) SeedServices(services []model.Service) error {
	return r.db.Create(&services).Error
}
