package dataset

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// PostProcess downloads missing sources and extracts missing clips
// @Summary      Process clip requests
// @Description  Ensure source audio and clip files exist for every recorded request. Individual failures are listed in the result.
// @Tags         dataset
// @Produce      json
// @Success      200 {object} types.ProcessResponse "Processing result"
// @Failure      503 {object} types.ErrorResponse "Record store unavailable"
// @Router       /api/process [post]
func PostProcess(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Processor == nil {
			types.SendServiceUnavailable(c, "processor")
			return
		}

		result, err := deps.Processor.ProcessAll(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		resp := types.ProcessResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Table processed successfully",
			},
			Result: result,
		}
		if result.HasFailures() {
			resp.Status = types.StatusPartial
			resp.Message = "Table processed with failures"
		}
		types.SendSuccess(c, resp)
	}
}
