package types

import "github.com/killallgit/clipset/internal/models"

// Status constants for API responses
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusPartial = "partial"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ExportResponse for a recorded clip request
type ExportResponse struct {
	BaseResponse
	Clip *models.ClipRequest `json:"clip"`
}

// PurgeResponse for the purge endpoint
type PurgeResponse struct {
	BaseResponse
	Removed int64 `json:"removed"`
}

// ProcessResponse for a processing pass
type ProcessResponse struct {
	BaseResponse
	Result *models.ProcessResult `json:"result"`
}

// ManifestResponse for a manifest build
type ManifestResponse struct {
	BaseResponse
	TrainPath  string                `json:"trainPath"`
	EvalPath   string                `json:"evalPath"`
	TrainCount int                   `json:"trainCount"`
	EvalCount  int                   `json:"evalCount"`
	Seed       uint64                `json:"seed"`
	Process    *models.ProcessResult `json:"process,omitempty"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}
