package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform success shape every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
