package models

// ManifestEntry is one line of a training or evaluation manifest
type ManifestEntry struct {
	VideoID string `json:"video_id"` // composite id {videoId}_{clipId}
	Wav     string `json:"wav"`      // clip file path
	Labels  string `json:"labels"`   // comma-joined label set
}

// ManifestFile is the on-disk shape of training.json and eval.json
type ManifestFile struct {
	Data []ManifestEntry `json:"data"`
}

// Manifest is the outcome of a build: the two splits, where they were
// written, and the processing pass that preceded them
type Manifest struct {
	Train     []ManifestEntry `json:"train"`
	Eval      []ManifestEntry `json:"eval"`
	TrainPath string          `json:"train_path"`
	EvalPath  string          `json:"eval_path"`
	Seed      uint64          `json:"seed"`
	Process   *ProcessResult  `json:"process,omitempty"`
}
