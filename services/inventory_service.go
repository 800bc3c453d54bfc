package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"motodealer-api/models"
	"motodealer-api/repositories"
	"motodealer-api/utils"
)

const msgMotorcycleNotFound = "Motorcycle not found"

// MotorcycleInput carries the descriptive fields of a motorcycle. A nil Mileage or
// empty Status means "default" on create and "unchanged" on update.
type MotorcycleInput struct {
	Brand       string
	Model       string
	Year        int
	Price       decimal.Decimal
	Color       string
	EngineSize  int
	FuelType    string
	Mileage     *int
	Description string
	ImageURL    string
	Status      models.MotorcycleStatus
}

func (in *MotorcycleInput) validate() error {
	if utils.IsBlank(in.Brand) || utils.IsBlank(in.Model) || in.Year <= 0 || !in.Price.IsPositive() {
		return utils.NewValidationError("Brand, model, year and price are required")
	}
	if in.Mileage != nil && *in.Mileage < 0 {
		return utils.NewValidationError("mileage cannot be negative")
	}
	if in.Status != "" && !in.Status.Valid() {
		return utils.NewValidationError("status must be one of available, sold, maintenance")
	}
	return nil
}

type InventoryService struct {
	motorcycles *repositories.MotorcycleRepository
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{motorcycles: repositories.NewMotorcycleRepository(db)}
}

func (s *InventoryService) Create(ctx context.Context, in MotorcycleInput) (*models.Motorcycle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	motorcycle := &models.Motorcycle{
		ID:     uuid.New().String(),
		Status: models.MotorcycleAvailable,
	}
	apply(motorcycle, in)

	if err := s.motorcycles.Create(ctx, motorcycle); err != nil {
		return nil, utils.NewInternalError("Failed to create motorcycle", err)
	}
	return motorcycle, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (*models.Motorcycle, error) {
	motorcycle, err := s.motorcycles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError(msgMotorcycleNotFound)
		}
		return nil, utils.NewInternalError("Failed to fetch motorcycle", err)
	}
	return motorcycle, nil
}

func (s *InventoryService) List(ctx context.Context) ([]models.Motorcycle, error) {
	motorcycles, err := s.motorcycles.FindAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch motorcycles", err)
	}
	return motorcycles, nil
}

// ListAvailable is the catalog shown to every signed-in user.
func (s *InventoryService) ListAvailable(ctx context.Context) ([]models.Motorcycle, error) {
	motorcycles, err := s.motorcycles.FindByStatus(ctx, models.MotorcycleAvailable)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch motorcycles", err)
	}
	return motorcycles, nil
}

// Update replaces the motorcycle's fields. Setting the status here does not touch sales.
func (s *InventoryService) Update(ctx context.Context, id string, in MotorcycleInput) (*models.Motorcycle, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	motorcycle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(motorcycle, in)

	if err := s.motorcycles.Save(ctx, motorcycle); err != nil {
		return nil, utils.NewInternalError("Failed to update motorcycle", err)
	}
	return motorcycle, nil
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	rows, err := s.motorcycles.Delete(ctx, id)
	if err != nil {
		return utils.NewInternalError("Failed to delete motorcycle", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError(msgMotorcycleNotFound)
	}
	return nil
}

func apply(motorcycle *models.Motorcycle, in MotorcycleInput) {
	motorcycle.Brand = in.Brand
	motorcycle.Model = in.Model
	motorcycle.Year = in.Year
	motorcycle.Price = in.Price
	motorcycle.Color = in.Color
	motorcycle.EngineSize = in.EngineSize
	motorcycle.FuelType = in.FuelType
	motorcycle.Description = in.Description
	motorcycle.ImageURL = in.ImageURL
	if in.Mileage != nil {
		motorcycle.Mileage = *in.Mileage
	}
	if in.Status != "" {
		motorcycle.Status = in.Status
	}
}
