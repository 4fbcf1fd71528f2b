package engagement

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// GetMostReplayed returns a video's engagement markers as a bare array
// @Summary      Get most replayed markers
// @Description  Return stored engagement markers for a video, fetching them from the provider on first use. An empty array means the provider has no data.
// @Tags         engagement
// @Produce      json
// @Param        videoId query string true "YouTube video id"
// @Success      200 {array} models.EngagementMarker "Engagement markers"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing or invalid videoId"
// @Failure      502 {object} types.ErrorResponse "Provider request failed"
// @Router       /api/most-replayed [get]
func GetMostReplayed(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Engagement == nil {
			types.SendServiceUnavailable(c, "engagement cache")
			return
		}

		videoID := c.Query("videoId")
		if videoID == "" {
			types.SendBadRequest(c, "videoId query parameter is required")
			return
		}

		markers, err := deps.Engagement.GetMarkers(c.Request.Context(), videoID)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, markers)
	}
}
