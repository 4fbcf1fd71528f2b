package records

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// RegisterRoutes registers clip request routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/export - Record a clip request
	router.POST("/export", PostExport(deps))

	// POST /api/purge - Delete every clip request
	router.POST("/purge", PostPurge(deps))
}
