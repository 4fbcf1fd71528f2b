package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Manifest   ManifestConfig   `mapstructure:"manifest"`
	Engagement EngagementConfig `mapstructure:"engagement"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limiting"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StorageConfig contains the artifact directory layout
type StorageConfig struct {
	AudioDir    string `mapstructure:"audio_dir"`
	ClipsDir    string `mapstructure:"clips_dir"`
	ManifestDir string `mapstructure:"manifest_dir"`

	// Leftover .part/.tmp files older than TempMaxAge are swept
	TempMaxAge    time.Duration `mapstructure:"temp_max_age"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// ProcessingConfig contains external tool and fan-out settings
type ProcessingConfig struct {
	Workers     int           `mapstructure:"workers"`
	YtdlpPath   string        `mapstructure:"ytdlp_path"`
	FFmpegPath  string        `mapstructure:"ffmpeg_path"`
	ToolTimeout time.Duration `mapstructure:"tool_timeout"`
}

// ManifestConfig contains train/eval split settings
type ManifestConfig struct {
	Seed       uint64  `mapstructure:"seed"`
	SeedRandom bool    `mapstructure:"seed_random"`
	EvalRatio  float64 `mapstructure:"eval_ratio"`
}

// EngagementConfig contains most-replayed provider settings
type EngagementConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	UserAgent string        `mapstructure:"user_agent"`
}

// RateLimitConfig contains per-client API rate limiting settings
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
