package dataset

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// RegisterRoutes registers dataset build routes
// Both handlers block until every download and trim has finished
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /api/process - Materialize sources and clips
	router.POST("/process", PostProcess(deps))

	// POST /api/jsonexport - Process, then write manifests
	router.POST("/jsonexport", PostJSONExport(deps))
}
