package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"motodealer-api/models"
	"motodealer-api/services"
	"motodealer-api/utils"
)

type MotorcycleController struct {
	inventory *services.InventoryService
}

func NewMotorcycleController(inventory *services.InventoryService) *MotorcycleController {
	return &MotorcycleController{inventory: inventory}
}

type MotorcycleRequest struct {
	Brand       string                  `json:"brand" binding:"required"`
	Model       string                  `json:"model" binding:"required"`
	Year        int                     `json:"year" binding:"required"`
	Price       decimal.Decimal         `json:"price"`
	Color       string                  `json:"color"`
	EngineSize  int                     `json:"engine_size"`
	FuelType    string                  `json:"fuel_type"`
	Mileage     *int                    `json:"mileage"`
	Description string                  `json:"description"`
	ImageURL    string                  `json:"image_url"`
	Status      models.MotorcycleStatus `json:"status"`
}

func (r *MotorcycleRequest) input() services.MotorcycleInput {
	return services.MotorcycleInput{
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Price:       r.Price,
		Color:       r.Color,
		EngineSize:  r.EngineSize,
		FuelType:    r.FuelType,
		Mileage:     r.Mileage,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Status:      r.Status,
	}
}

// GetMotorcycles lists the whole inventory.
func (mc *MotorcycleController) GetMotorcycles(c *gin.Context) {
	motorcycles, err := mc.inventory.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, motorcycles)
}

// GetPublicMotorcycles lists only what can still be sold.
func (mc *MotorcycleController) GetPublicMotorcycles(c *gin.Context) {
	motorcycles, err := mc.inventory.ListAvailable(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, motorcycles)
}

func (mc *MotorcycleController) GetMotorcycle(c *gin.Context) {
	motorcycle, err := mc.inventory.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) CreateMotorcycle(c *gin.Context) {
	var req MotorcycleRequest
	if !bindJSON(c, &req) {
		return
	}

	motorcycle, err := mc.inventory.Create(c.Request.Context(), req.input())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, motorcycle)
}

func (mc *MotorcycleController) UpdateMotorcycle(c *gin.Context) {
	var req MotorcycleRequest
	if !bindJSON(c, &req) {
		return
	}

	motorcycle, err := mc.inventory.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, motorcycle)
}

func (mc *MotorcycleController) DeleteMotorcycle(c *gin.Context) {
	if err := mc.inventory.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	utils.SendMessage(c, "Motorcycle deleted successfully")
}
