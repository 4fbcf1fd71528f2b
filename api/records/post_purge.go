package records

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// PostPurge deletes every clip request
// @Summary      Purge clip requests
// @Description  Delete every recorded clip request. Files on disk and engagement markers are kept.
// @Tags         records
// @Produce      json
// @Success      200 {object} types.PurgeResponse "Purge result"
// @Failure      503 {object} types.ErrorResponse "Record store unavailable"
// @Router       /api/purge [post]
func PostPurge(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Records == nil {
			types.SendServiceUnavailable(c, "record store")
			return
		}

		removed, err := deps.Records.Purge(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.PurgeResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Table purged successfully",
			},
			Removed: removed,
		})
	}
}
