package services

import (
	"context"
	"math"

	"gorm.io/gorm"
	"motodealer-api/models"
	"motodealer-api/repositories"
	"motodealer-api/utils"
)

type DashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalMotorcycles     int64 `json:"total_motorcycles"`
	AvailableMotorcycles int64 `json:"available_motorcycles"`
	TotalSales           int64 `json:"total_sales"`
	// Sales as a rounded percentage of the inventory
	ConversionRate int64 `json:"conversion_rate"`
}

type DashboardService struct {
	users       *repositories.UserRepository
	motorcycles *repositories.MotorcycleRepository
	sales       *repositories.SaleRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		users:       repositories.NewUserRepository(db),
		motorcycles: repositories.NewMotorcycleRepository(db),
		sales:       repositories.NewSaleRepository(db),
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, utils.NewInternalError("Failed to count users", err)
	}
	if stats.TotalMotorcycles, err = s.motorcycles.Count(ctx); err != nil {
		return nil, utils.NewInternalError("Failed to count motorcycles", err)
	}
	if stats.AvailableMotorcycles, err = s.motorcycles.CountByStatus(ctx, models.MotorcycleAvailable); err != nil {
		return nil, utils.NewInternalError("Failed to count motorcycles", err)
	}
	if stats.TotalSales, err = s.sales.Count(ctx); err != nil {
		return nil, utils.NewInternalError("Failed to count sales", err)
	}

	if stats.TotalMotorcycles > 0 {
		stats.ConversionRate = int64(math.Round(float64(stats.TotalSales) / float64(stats.TotalMotorcycles) * 100))
	}
	return &stats, nil
}
