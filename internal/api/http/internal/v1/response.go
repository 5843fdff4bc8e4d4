package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func errorResponse(c *gin.Context, code ErrorCode) {
	c.AbortWithStatusJSON(http.StatusBadRequest, getErrorStruct(code))
}

func errorResponseWithStatus(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.JSON(http.StatusBadRequest, response)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "number":
		return "This field must be numeric"
	case "min":
		return fmt.Sprintf("Minimum length is %v", value)
	case "max":
		return fmt.Sprintf("Maximum length is %v", value)
	case "role":
		return "Role must be one of: manager, founder, team_member, investor"
	case "uuid":
		return "Invalid identifier format"
	}
	return tag
}
