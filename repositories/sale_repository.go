package repositories

import (
	"context"

	"gorm.io/gorm"
	"motodealer-api/models"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) WithTx(tx *gorm.DB) *SaleRepository {
	return &SaleRepository{db: tx}
}

func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Motorcycle").Create(sale).Error
}

// FindByID loads a sale together with the motorcycle it references, if that still exists.
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).Preload("Motorcycle").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindAll returns every sale with its motorcycle, newest first.
func (r *SaleRepository) FindAll(ctx context.Context) ([]models.Sale, error) {
	sales := []models.Sale{}
	err := r.db.WithContext(ctx).
		Preload("Motorcycle").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *SaleRepository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Omit("Motorcycle").Save(sale).Error
}

func (r *SaleRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Sale{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *SaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Sale{}).Count(&count).Error
	return count, err
}
