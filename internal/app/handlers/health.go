package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":   "healthy",
		"service":  "order-picker-service",
		"sessions": Registry.Len(),
		"time":     time.Now().Format(time.RFC3339),
	}
	if RedisHealthy != nil {
		resp["redis"] = "down"
		if RedisHealthy(c.Request.Context()) {
			resp["redis"] = "up"
		}
	}
	c.JSON(http.StatusOK, resp)
}
