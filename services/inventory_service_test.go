package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"motodealer-api/database/dbtest"
	"motodealer-api/models"
	"motodealer-api/utils"
)

func hondaCB500() MotorcycleInput {
	return MotorcycleInput{
		Brand:      "Honda",
		Model:      "CB500",
		Year:       2022,
		Price:      decimal.RequireFromString("35990.50"),
		Color:      "Red",
		EngineSize: 471,
		FuelType:   "gasoline",
	}
}

func TestInventory_CreateDefaults(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))

	motorcycle, err := service.Create(context.Background(), hondaCB500())
	require.NoError(t, err)

	assert.NotEmpty(t, motorcycle.ID)
	assert.Equal(t, models.MotorcycleAvailable, motorcycle.Status)
	assert.Equal(t, 0, motorcycle.Mileage)

	fetched, err := service.Get(context.Background(), motorcycle.ID)
	require.NoError(t, err)
	assert.Equal(t, "CB500", fetched.Model)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("35990.50")))
}

func TestInventory_Validation(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))
	negative := -10

	tests := []struct {
		name   string
		mutate func(*MotorcycleInput)
	}{
		{"missing brand", func(in *MotorcycleInput) { in.Brand = "" }},
		{"zero year", func(in *MotorcycleInput) { in.Year = 0 }},
		{"zero price", func(in *MotorcycleInput) { in.Price = decimal.Zero }},
		{"negative mileage", func(in *MotorcycleInput) { in.Mileage = &negative }},
		{"unknown status", func(in *MotorcycleInput) { in.Status = "stolen" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := hondaCB500()
			tt.mutate(&in)

			_, err := service.Create(context.Background(), in)
			assert.True(t, utils.IsKind(err, utils.KindValidation))
		})
	}
}

func TestInventory_ListAvailableFollowsStatus(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))
	ctx := context.Background()

	motorcycle, err := service.Create(ctx, hondaCB500())
	require.NoError(t, err)

	available, err := service.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	in := hondaCB500()
	in.Status = models.MotorcycleMaintenance
	updated, err := service.Update(ctx, motorcycle.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.MotorcycleMaintenance, updated.Status)

	available, err = service.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInventory_UpdateKeepsOmittedMileageAndStatus(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))
	ctx := context.Background()

	in := hondaCB500()
	mileage := 1200
	in.Mileage = &mileage
	motorcycle, err := service.Create(ctx, in)
	require.NoError(t, err)

	updated, err := service.Update(ctx, motorcycle.ID, hondaCB500())
	require.NoError(t, err)
	assert.Equal(t, 1200, updated.Mileage)
	assert.Equal(t, models.MotorcycleAvailable, updated.Status)
}

func TestInventory_NotFound(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))
	ctx := context.Background()

	_, err := service.Get(ctx, "missing")
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = service.Update(ctx, "missing", hondaCB500())
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	assert.True(t, utils.IsKind(service.Delete(ctx, "missing"), utils.KindNotFound))
}

func TestInventory_Delete(t *testing.T) {
	service := NewInventoryService(dbtest.Open(t))
	ctx := context.Background()

	motorcycle, err := service.Create(ctx, hondaCB500())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, motorcycle.ID))
	_, err = service.Get(ctx, motorcycle.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
