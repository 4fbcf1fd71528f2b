package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
// @Summary      Version information
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{} "Version information"
// @Router       /version [get]
func Get(version string) gin.HandlerFunc {
	if version == "" {
		version = "dev"
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "clipset",
			"version":     version,
			"description": "Labeled audio clip dataset builder for YouTube videos",
			"status":      "running",
		})
	}
}
