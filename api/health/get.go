package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Report service and record store health
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{} "Service healthy"
// @Failure      503 {object} map[string]interface{} "Record store unreachable"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		response := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		dbStatus := getDatabaseStatus(deps)
		response["database"] = dbStatus
		if dbStatus["connected"] == false && dbStatus["status"] != "not configured" {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
		}

		c.JSON(status, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured", "connected": false}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "error", "connected": false, "error": err.Error()}
	}

	return gin.H{"status": "connected", "connected": true}
}
