package controllers

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"motodealer-api/utils"
)

const invalidBody = "Invalid request body"

func init() {
	// Report validation failures by json field name rather than Go field name
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes the request body, attaching a validation error on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(utils.NewValidationError(bindingMessage(err)))
		return false
	}
	return true
}

func bindingMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return invalidBody + ": " + fe.Field() + " is required"
		}
		return invalidBody + ": " + fe.Field() + " is invalid"
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return invalidBody + ": " + typeErr.Field + " has the wrong type"
	}
	return invalidBody
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
