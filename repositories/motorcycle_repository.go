package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"motodealer-api/models"
)

type MotorcycleRepository struct {
	db *gorm.DB
}

func NewMotorcycleRepository(db *gorm.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *MotorcycleRepository) WithTx(tx *gorm.DB) *MotorcycleRepository {
	return &MotorcycleRepository{db: tx}
}

func (r *MotorcycleRepository) Create(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Create(motorcycle).Error
}

func (r *MotorcycleRepository) FindByID(ctx context.Context, id string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	if err := r.db.WithContext(ctx).First(&motorcycle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

// FindAvailableForUpdate loads the motorcycle only while it is available and locks the
// row until the surrounding transaction ends. A missing or unavailable motorcycle both
// yield gorm.ErrRecordNotFound.
func (r *MotorcycleRepository) FindAvailableForUpdate(ctx context.Context, id string) (*models.Motorcycle, error) {
	var motorcycle models.Motorcycle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND status = ?", id, models.MotorcycleAvailable).
		First(&motorcycle).Error
	if err != nil {
		return nil, err
	}
	return &motorcycle, nil
}

// FindAll returns the whole inventory, newest first.
func (r *MotorcycleRepository) FindAll(ctx context.Context) ([]models.Motorcycle, error) {
	motorcycles := []models.Motorcycle{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&motorcycles).Error
	return motorcycles, err
}

func (r *MotorcycleRepository) FindByStatus(ctx context.Context, status models.MotorcycleStatus) ([]models.Motorcycle, error) {
	motorcycles := []models.Motorcycle{}
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&motorcycles).Error
	return motorcycles, err
}

func (r *MotorcycleRepository) Save(ctx context.Context, motorcycle *models.Motorcycle) error {
	return r.db.WithContext(ctx).Save(motorcycle).Error
}

// TransitionStatus moves the motorcycle from one status to another and reports whether
// the row was in the expected status.
func (r *MotorcycleRepository) TransitionStatus(ctx context.Context, id string, from, to models.MotorcycleStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Motorcycle{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// SetStatus overwrites the status regardless of its current value.
func (r *MotorcycleRepository) SetStatus(ctx context.Context, id string, status models.MotorcycleStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Motorcycle{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *MotorcycleRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Motorcycle{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *MotorcycleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Motorcycle{}).Count(&count).Error
	return count, err
}

func (r *MotorcycleRepository) CountByStatus(ctx context.Context, status models.MotorcycleStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Motorcycle{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
