package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	apperrors "github.com/killallgit/clipset/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (CLIPSET_SERVER_PORT etc.)
const EnvPrefix = "CLIPSET"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		setDefaults()

		// A missing .env is the normal case outside local development
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to load .env file: %v", err)
		}

		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", port))
	}

	for _, key := range []string{"storage.audio_dir", "storage.clips_dir", "storage.manifest_dir", "database.path"} {
		if viper.GetString(key) == "" {
			return apperrors.ConfigError(key, "must not be empty")
		}
	}

	// Auto-correct invalid worker count
	if viper.GetInt("processing.workers") <= 0 {
		viper.Set("processing.workers", 4)
	}

	ratio := viper.GetFloat64("manifest.eval_ratio")
	if ratio < 0 || ratio >= 1 {
		log.Printf("[WARN] manifest.eval_ratio %v out of range, using 0.1", ratio)
		viper.Set("manifest.eval_ratio", 0.1)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if c.Storage.AudioDir == "" || c.Storage.ClipsDir == "" || c.Storage.ManifestDir == "" {
		return apperrors.ConfigError("storage", "directories must not be empty")
	}

	if c.Processing.Workers <= 0 {
		c.Processing.Workers = 4
	}

	if c.Manifest.EvalRatio < 0 || c.Manifest.EvalRatio >= 1 {
		c.Manifest.EvalRatio = 0.1
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// process/jsonexport block until every download and trim is done
	viper.SetDefault("server.write_timeout", 0)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/clipset.db")
	viper.SetDefault("database.verbose", false)

	// Storage defaults
	viper.SetDefault("storage.audio_dir", "audio_src")
	viper.SetDefault("storage.clips_dir", "train_src")
	viper.SetDefault("storage.manifest_dir", "json")
	viper.SetDefault("storage.temp_max_age", 6*time.Hour)
	viper.SetDefault("storage.sweep_interval", time.Hour)

	// Processing defaults
	viper.SetDefault("processing.workers", 4)
	viper.SetDefault("processing.ytdlp_path", "yt-dlp")
	viper.SetDefault("processing.ffmpeg_path", "ffmpeg")
	viper.SetDefault("processing.tool_timeout", 0)

	// Manifest defaults
	viper.SetDefault("manifest.seed", 42)
	viper.SetDefault("manifest.seed_random", false)
	viper.SetDefault("manifest.eval_ratio", 0.1)

	// Engagement provider defaults
	viper.SetDefault("engagement.base_url", "https://yt.lemnoslife.com")
	viper.SetDefault("engagement.timeout", 15*time.Second)
	viper.SetDefault("engagement.rate_limit", 2.0)
	viper.SetDefault("engagement.user_agent", "clipset/1.0")

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 10.0)
	viper.SetDefault("rate_limiting.burst", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}
