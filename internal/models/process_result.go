package models

import "time"

// ArtifactKind distinguishes source audio from extracted clips
type ArtifactKind string

const (
	ArtifactSource ArtifactKind = "source"
	ArtifactClip   ArtifactKind = "clip"
)

// ArtifactStatus describes one artifact that is present after processing
type ArtifactStatus struct {
	Kind   ArtifactKind `json:"kind"`
	ID     string       `json:"id"`
	Path   string       `json:"path"`
	Cached bool         `json:"cached"`
}

// Failure describes one artifact that could not be produced
type Failure struct {
	Kind      ArtifactKind `json:"kind"`
	ID        string       `json:"id"`
	ErrorKind string       `json:"errorKind"`
	Message   string       `json:"message"`
}

// ProcessResult summarizes a processing pass. Individual failures are listed
// here rather than failing the pass.
type ProcessResult struct {
	RunID          string           `json:"run_id"`
	StartedAt      time.Time        `json:"started_at"`
	DurationMillis int64            `json:"duration_ms"`
	Succeeded      []ArtifactStatus `json:"succeeded"`
	Failed         []Failure        `json:"failed"`
	SourcesFetched int              `json:"sources_fetched"`
	SourcesCached  int              `json:"sources_cached"`
	ClipsExtracted int              `json:"clips_extracted"`
	ClipsCached    int              `json:"clips_cached"`
	ClipsSkipped   int              `json:"clips_skipped"`
}

// HasFailures reports whether any artifact failed
func (r *ProcessResult) HasFailures() bool {
	return r != nil && len(r.Failed) > 0
}

// Finish stamps the elapsed time
func (r *ProcessResult) Finish() {
	r.DurationMillis = time.Since(r.StartedAt).Milliseconds()
}
