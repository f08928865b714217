package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/registrar-labs/course-registry-api/internal/models"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

// Envelope represents the common response contract. Errors carry their own
// status code; the envelope mirrors the message and description so callers can
// read them without unpacking the error object.
type Envelope struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message,omitempty"`
	Description string             `json:"description,omitempty"`
	Data        interface{}        `json:"data,omitempty"`
	Pagination  *models.Pagination `json:"pagination,omitempty"`
	Error       *appErrors.Error   `json:"error,omitempty"`
}

// JSON sends a success response with an optional message and pagination metadata.
func JSON(c *gin.Context, status int, message string, data interface{}, pagination *models.Pagination) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, Envelope{Success: true, Message: message, Data: data, Pagination: pagination})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data, nil)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data, nil)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, Envelope{
		Success:     false,
		Message:     appErr.Message,
		Description: appErr.Description,
		Error:       appErr,
	})
}
