package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/reviewsense/internal/config"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.Addr, cfg.Addr)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 100, cfg.PadLength)
	assert.Equal(t, 0.8, cfg.FallbackConfidence)
	assert.Equal(t, "english", cfg.LexiconLanguage)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, []string{"stdout"}, cfg.LogOutput)
	assert.False(t, cfg.LogSource)

	ac := cfg.AnalyzerConfig()
	assert.Equal(t, 100, ac.PadLength)
	assert.Equal(t, 5, ac.BreakerFailures)
	assert.Equal(t, 30*time.Second, ac.BreakerCooldown)

	files := cfg.ArtifactFiles()
	assert.Equal(t, "vocab.gob", files.Vocabulary)
	assert.Equal(t, "parameters.gob", files.Parameters)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "custom.toml", `
addr = ":8080"
model_dir = "/srv/model"
pad_length = 64
log_format = "JSON"
cors_origins = ["https://example.com", "  "]
log_output = [" stderr ", ""]
`)
	t.Setenv("REVIEWSENSE_PAD_LENGTH", "32")
	t.Setenv("REVIEWSENSE_LOG_LEVEL", "DEBUG")
	t.Setenv("REVIEWSENSE_LOG_SOURCE", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "/srv/model", cfg.ModelDir)
	assert.Equal(t, 32, cfg.PadLength, "environment overrides the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, []string{"https://example.com"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"stderr"}, cfg.LogOutput)
	assert.True(t, cfg.LogSource)
}

func TestLoadPicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, config.DefaultConfigFile, `breaker_failures = 0`)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.BreakerFailures)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "REVIEWSENSE_MODEL_DIR=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("REVIEWSENSE_MODEL_DIR") })

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.ModelDir)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	tests := []struct {
		desc     string
		contents string
		missing  bool
	}{
		{desc: "explicit path missing", missing: true},
		{desc: "malformed toml", contents: `addr = `},
		{desc: "unknown key", contents: `colour = "blue"`},
		{desc: "invalid value", contents: `pad_length = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			path := filepath.Join(dir, "missing.toml")
			if !tt.missing {
				path = writeFile(t, dir, "bad.toml", tt.contents)
			}
			_, err := config.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		desc   string
		mutate func(*config.Config)
	}{
		{"empty addr", func(c *config.Config) { c.Addr = "" }},
		{"negative rate", func(c *config.Config) { c.RateLimit = -1 }},
		{"zero burst", func(c *config.Config) { c.RateBurst = 0 }},
		{"zero shutdown", func(c *config.Config) { c.ShutdownTimeoutSeconds = 0 }},
		{"empty model dir", func(c *config.Config) { c.ModelDir = "" }},
		{"empty parameters file", func(c *config.Config) { c.ParametersFile = "" }},
		{"zero pad length", func(c *config.Config) { c.PadLength = 0 }},
		{"zero confidence", func(c *config.Config) { c.FallbackConfidence = 0 }},
		{"confidence above one", func(c *config.Config) { c.FallbackConfidence = 1.5 }},
		{"negative breaker failures", func(c *config.Config) { c.BreakerFailures = -1 }},
		{"zero cooldown", func(c *config.Config) { c.BreakerCooldownSeconds = 0 }},
		{"unknown level", func(c *config.Config) { c.LogLevel = "verbose" }},
		{"unknown format", func(c *config.Config) { c.LogFormat = "xml" }},
		{"no log output", func(c *config.Config) { c.LogOutput = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("rate limiting disabled ignores burst", func(t *testing.T) {
		cfg := config.Default()
		cfg.RateLimit = 0
		cfg.RateBurst = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestLexiconPath(t *testing.T) {
	cfg := config.Default()
	assert.Empty(t, cfg.LexiconPath())

	cfg.LexiconFile = "lexicon.json"
	assert.Equal(t, filepath.Join("model", "lexicon.json"), cfg.LexiconPath())

	cfg.LexiconFile = "/etc/reviewsense/lexicon.json"
	assert.Equal(t, "/etc/reviewsense/lexicon.json", cfg.LexiconPath())
}
