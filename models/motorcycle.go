package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Motorcycle struct {
	ID          string           `json:"id" gorm:"primaryKey;size:191"`
	Brand       string           `json:"brand" gorm:"not null;size:100"`
	Model       string           `json:"model" gorm:"not null;size:100"`
	Year        int              `json:"year" gorm:"not null"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(12,2);not null"`
	Color       string           `json:"color" gorm:"size:50"`
	EngineSize  int              `json:"engine_size"`
	FuelType    string           `json:"fuel_type" gorm:"size:50"`
	Mileage     int              `json:"mileage" gorm:"not null;default:0"`
	Description string           `json:"description" gorm:"type:text"`
	ImageURL    string           `json:"image_url" gorm:"size:500"`
	Status      MotorcycleStatus `json:"status" gorm:"not null;size:20;default:available;index"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
