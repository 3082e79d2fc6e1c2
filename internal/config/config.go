package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"go-simpler.org/env"

	"github.com/tsawler/reviewsense"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "reviewsense.toml"

// Config holds every setting of the service and the CLI. Values come from
// Default, then the TOML file, then the environment.
type Config struct {
	Addr                   string   `toml:"addr" env:"REVIEWSENSE_ADDR"`
	CORSOrigins            []string `toml:"cors_origins" env:"REVIEWSENSE_CORS_ORIGINS"` // space separated in the environment
	RateLimit              float64  `toml:"rate_limit" env:"REVIEWSENSE_RATE_LIMIT"` // requests per second per client; 0 disables
	RateBurst              int      `toml:"rate_burst" env:"REVIEWSENSE_RATE_BURST"`
	BodyLimit              string   `toml:"body_limit" env:"REVIEWSENSE_BODY_LIMIT"`
	ShutdownTimeoutSeconds int      `toml:"shutdown_timeout_seconds" env:"REVIEWSENSE_SHUTDOWN_TIMEOUT_SECONDS"`

	ModelDir        string `toml:"model_dir" env:"REVIEWSENSE_MODEL_DIR"`
	VocabularyFile  string `toml:"vocabulary_file" env:"REVIEWSENSE_VOCABULARY_FILE"`
	ParametersFile  string `toml:"parameters_file" env:"REVIEWSENSE_PARAMETERS_FILE"`
	LexiconFile     string `toml:"lexicon_file" env:"REVIEWSENSE_LEXICON_FILE"`
	LexiconLanguage string `toml:"lexicon_language" env:"REVIEWSENSE_LEXICON_LANGUAGE"`

	PadLength              int     `toml:"pad_length" env:"REVIEWSENSE_PAD_LENGTH"`
	FallbackConfidence     float64 `toml:"fallback_confidence" env:"REVIEWSENSE_FALLBACK_CONFIDENCE"`
	BreakerFailures        int     `toml:"breaker_failures" env:"REVIEWSENSE_BREAKER_FAILURES"`
	BreakerCooldownSeconds int     `toml:"breaker_cooldown_seconds" env:"REVIEWSENSE_BREAKER_COOLDOWN_SECONDS"`

	LogLevel  string   `toml:"log_level" env:"REVIEWSENSE_LOG_LEVEL"`
	LogFormat string   `toml:"log_format" env:"REVIEWSENSE_LOG_FORMAT"`
	LogOutput []string `toml:"log_output" env:"REVIEWSENSE_LOG_OUTPUT"` // stdout, stderr or file paths; used by serve
	LogSource bool     `toml:"log_source" env:"REVIEWSENSE_LOG_SOURCE"` // add source locations to records
}

// Load reads configuration. An explicit path must exist; with an empty path
// DefaultConfigFile is used when present. A .env file in the working
// directory is loaded into the environment before overrides are applied.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}
	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return path, true, nil
	}
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfigFile, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return DefaultConfigFile, true, nil
}

// ArtifactFiles returns the artifact file names relative to ModelDir.
func (c *Config) ArtifactFiles() reviewsense.ArtifactFiles {
	return reviewsense.ArtifactFiles{
		Vocabulary: c.VocabularyFile,
		Parameters: c.ParametersFile,
	}
}

// LexiconPath returns the lexicon file path, resolved against ModelDir when
// relative, or "" when no external lexicon is configured.
func (c *Config) LexiconPath() string {
	if c.LexiconFile == "" || filepath.IsAbs(c.LexiconFile) {
		return c.LexiconFile
	}
	return filepath.Join(c.ModelDir, c.LexiconFile)
}

// AnalyzerConfig returns the inference settings.
func (c *Config) AnalyzerConfig() reviewsense.AnalyzerConfig {
	return reviewsense.AnalyzerConfig{
		PadLength:          c.PadLength,
		FallbackConfidence: c.FallbackConfidence,
		BreakerFailures:    c.BreakerFailures,
		BreakerCooldown:    time.Duration(c.BreakerCooldownSeconds) * time.Second,
	}
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
