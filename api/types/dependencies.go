package types

import (
	"github.com/killallgit/clipset/internal/database"
	"github.com/killallgit/clipset/internal/services/engagement"
	"github.com/killallgit/clipset/internal/services/manifest"
	"github.com/killallgit/clipset/internal/services/pipeline"
	"github.com/killallgit/clipset/internal/services/records"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB         *database.DB
	Records    records.Service
	Processor  pipeline.Processor
	Manifest   manifest.Builder
	Engagement engagement.Cache
	Registry   *prometheus.Registry
	Version    string
}
