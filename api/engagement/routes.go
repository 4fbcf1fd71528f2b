package engagement

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// RegisterRoutes registers engagement routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/most-replayed?videoId= - Engagement markers for a video
	router.GET("/most-replayed", GetMostReplayed(deps))
}
