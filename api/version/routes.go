package version

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies) {
	var v string
	if deps != nil {
		v = deps.Version
	}
	engine.GET("/version", Get(v))
}
