package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"motodealer-api/models"
)

type fakeMailer struct {
	mu       sync.Mutex
	welcomes []string
	receipts []string
}

func (m *fakeMailer) SendWelcomeEmail(email, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcomes = append(m.welcomes, email)
	return nil
}

func (m *fakeMailer) SendSaleReceipt(sale *models.Sale) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, sale.ID)
	return nil
}

func (m *fakeMailer) receiptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.receipts)
}

func (m *fakeMailer) welcomeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.welcomes)
}

func seedMotorcycle(t testing.TB, db *gorm.DB, status models.MotorcycleStatus) *models.Motorcycle {
	t.Helper()

	motorcycle := &models.Motorcycle{
		ID:     uuid.New().String(),
		Brand:  "Yamaha",
		Model:  "MT-07",
		Year:   2023,
		Price:  decimal.NewFromInt(42000),
		Status: status,
	}
	require.NoError(t, db.Create(motorcycle).Error)
	return motorcycle
}

func motorcycleStatus(t testing.TB, db *gorm.DB, id string) models.MotorcycleStatus {
	t.Helper()

	var motorcycle models.Motorcycle
	require.NoError(t, db.First(&motorcycle, "id = ?", id).Error)
	return motorcycle.Status
}

func countSales(t testing.TB, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&count).Error)
	return count
}

func saleCommand(motorcycleID string) CreateSaleCommand {
	return CreateSaleCommand{
		MotorcycleID:  motorcycleID,
		CustomerName:  "Ana Souza",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+55 11 99999-0000",
		SalePrice:     decimal.NewFromInt(41000),
		PaymentMethod: "financing",
	}
}
