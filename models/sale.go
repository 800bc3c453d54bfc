package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records the sale of one motorcycle. Its existence implies the referenced
// motorcycle is sold; only services.SaleService creates or deletes sales.
type Sale struct {
	ID            string          `json:"id" gorm:"primaryKey;size:191"`
	MotorcycleID  string          `json:"motorcycle_id" gorm:"not null;size:191;index"`
	CustomerName  string          `json:"customer_name" gorm:"not null;size:255"`
	CustomerEmail string          `json:"customer_email" gorm:"not null;size:255"`
	CustomerPhone string          `json:"customer_phone" gorm:"size:50"`
	CustomerCPF   string          `json:"customer_cpf" gorm:"size:20"`
	SalePrice     decimal.Decimal `json:"sale_price" gorm:"type:decimal(12,2);not null"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50"`
	Installments  int             `json:"installments" gorm:"not null;default:1"`
	SaleDate      time.Time       `json:"sale_date"`
	Status        SaleStatus      `json:"status" gorm:"not null;size:20;default:completed"`
	Notes         string          `json:"notes" gorm:"type:text"`
	CreatedBy     string          `json:"created_by" gorm:"size:191"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Motorcycle *Motorcycle `json:"motorcycle,omitempty" gorm:"foreignKey:MotorcycleID"`
}
