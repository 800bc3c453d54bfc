package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"motodealer-api/middleware"
	"motodealer-api/models"
	"motodealer-api/services"
	"motodealer-api/utils"
)

type SaleController struct {
	sales *services.SaleService
}

func NewSaleController(sales *services.SaleService) *SaleController {
	return &SaleController{sales: sales}
}

type CreateSaleRequest struct {
	MotorcycleID  string            `json:"motorcycle_id" binding:"required"`
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"required"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerCPF   string            `json:"customer_cpf"`
	SalePrice     decimal.Decimal   `json:"sale_price"`
	PaymentMethod string            `json:"payment_method"`
	Installments  int               `json:"installments"`
	Status        models.SaleStatus `json:"status"`
	Notes         string            `json:"notes"`
}

type UpdateSaleRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"required"`
	CustomerPhone string            `json:"customer_phone"`
	CustomerCPF   string            `json:"customer_cpf"`
	SalePrice     decimal.Decimal   `json:"sale_price"`
	PaymentMethod string            `json:"payment_method"`
	Installments  int               `json:"installments"`
	Status        models.SaleStatus `json:"status"`
	Notes         string            `json:"notes"`
}

func (sc *SaleController) GetSales(c *gin.Context) {
	sales, err := sc.sales.ListSales(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}

func (sc *SaleController) GetSale(c *gin.Context) {
	sale, err := sc.sales.GetSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (sc *SaleController) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.CurrentIdentity(c)
	sale, err := sc.sales.CreateSale(c.Request.Context(), services.CreateSaleCommand{
		MotorcycleID:  req.MotorcycleID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CustomerCPF:   req.CustomerCPF,
		SalePrice:     req.SalePrice,
		PaymentMethod: req.PaymentMethod,
		Installments:  req.Installments,
		Status:        req.Status,
		Notes:         req.Notes,
	}, actor.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (sc *SaleController) UpdateSale(c *gin.Context) {
	var req UpdateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	sale, err := sc.sales.UpdateSale(c.Request.Context(), c.Param("id"), services.UpdateSaleCommand{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CustomerCPF:   req.CustomerCPF,
		SalePrice:     req.SalePrice,
		PaymentMethod: req.PaymentMethod,
		Installments:  req.Installments,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

func (sc *SaleController) DeleteSale(c *gin.Context) {
	if err := sc.sales.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	utils.SendMessage(c, "Sale deleted successfully")
}
