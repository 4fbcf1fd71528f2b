package records

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
	recordsService "github.com/killallgit/clipset/internal/services/records"
)

// PostExport records one clip request
// @Summary      Record a clip request
// @Description  Validate and store a labeled time range of a video for later extraction
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        request body records.ExportRequest true "Clip request"
// @Success      201 {object} types.ExportResponse "Recorded clip request"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid clip request"
// @Failure      503 {object} types.ErrorResponse "Record store unavailable"
// @Router       /api/export [post]
func PostExport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Records == nil {
			types.SendServiceUnavailable(c, "record store")
			return
		}

		var req recordsService.ExportRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		clip, err := deps.Records.Export(c.Request.Context(), req)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.ExportResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Data exported successfully",
			},
			Clip: clip,
		})
	}
}
