package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"motodealer-api/middleware"
	"motodealer-api/services"
)

type AuthController struct {
	accounts *services.AccountService
}

func NewAuthController(accounts *services.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.accounts.Register(c.Request.Context(), services.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := ac.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me returns the profile behind the presented credential.
func (ac *AuthController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	user, err := ac.accounts.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
