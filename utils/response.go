package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SendError renders an *AppError. Internal errors never expose their message or cause.
func SendError(c *gin.Context, err *AppError) {
	status := err.Status()
	message := err.Message
	if err.Kind == KindInternal {
		message = "Internal server error"
	}
	c.JSON(status, ErrorResponse{
		Error: message,
		Code:  status,
	})
}

func SendMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}
