package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Role is the closed set of account roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// MotorcycleStatus is the inventory state of a motorcycle. Only the sale protocol moves
// a motorcycle between available and sold; maintenance is set administratively.
type MotorcycleStatus string

const (
	MotorcycleAvailable   MotorcycleStatus = "available"
	MotorcycleSold        MotorcycleStatus = "sold"
	MotorcycleMaintenance MotorcycleStatus = "maintenance"
)

func (s MotorcycleStatus) Valid() bool {
	switch s {
	case MotorcycleAvailable, MotorcycleSold, MotorcycleMaintenance:
		return true
	}
	return false
}

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SalePending   SaleStatus = "pending"
	SaleCancelled SaleStatus = "cancelled"
)

func (s SaleStatus) Valid() bool {
	switch s {
	case SaleCompleted, SalePending, SaleCancelled:
		return true
	}
	return false
}
