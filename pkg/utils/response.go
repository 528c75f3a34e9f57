package utils

import (
	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint returns so the dashboard can
// handle results uniformly.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}
