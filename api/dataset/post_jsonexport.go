package dataset

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
)

// PostJSONExport processes every request and writes the training and eval manifests
// @Summary      Build manifests
// @Description  Run a processing pass, then shuffle the available clips and write training.json and eval.json
// @Tags         dataset
// @Produce      json
// @Success      200 {object} types.ManifestResponse "Manifest build result"
// @Failure      500 {object} types.ErrorResponse "Manifest could not be written"
// @Failure      503 {object} types.ErrorResponse "Record store unavailable"
// @Router       /api/jsonexport [post]
func PostJSONExport(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Manifest == nil {
			types.SendServiceUnavailable(c, "manifest builder")
			return
		}

		m, err := deps.Manifest.Build(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		resp := types.ManifestResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "JSON export completed successfully",
			},
			TrainPath:  m.TrainPath,
			EvalPath:   m.EvalPath,
			TrainCount: len(m.Train),
			EvalCount:  len(m.Eval),
			Seed:       m.Seed,
			Process:    m.Process,
		}
		if m.Process.HasFailures() {
			resp.Status = types.StatusPartial
		}
		types.SendSuccess(c, resp)
	}
}
