package config

import (
	"errors"
	"fmt"
	"strings"
)

func (c *Config) normalize() {
	c.Addr = strings.TrimSpace(c.Addr)
	c.ModelDir = strings.TrimSpace(c.ModelDir)
	c.VocabularyFile = strings.TrimSpace(c.VocabularyFile)
	c.ParametersFile = strings.TrimSpace(c.ParametersFile)
	c.LexiconFile = strings.TrimSpace(c.LexiconFile)
	c.LexiconLanguage = strings.ToLower(strings.TrimSpace(c.LexiconLanguage))
	if c.LexiconLanguage == "" {
		c.LexiconLanguage = defaultLexiconLanguage
	}
	c.BodyLimit = strings.ToUpper(strings.TrimSpace(c.BodyLimit))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	c.CORSOrigins = compact(c.CORSOrigins)
	c.LogOutput = compact(c.LogOutput)
}

// compact trims every value and drops the blank ones.
func compact(values []string) []string {
	out := values[:0]
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateInference(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Addr == "" {
		return errors.New("addr must be set")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be >= 0, got %v", c.RateLimit)
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be positive when rate limiting, got %d", c.RateBurst)
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("shutdown_timeout_seconds must be positive, got %d", c.ShutdownTimeoutSeconds)
	}
	return nil
}

func (c *Config) validateModel() error {
	if c.ModelDir == "" {
		return errors.New("model_dir must be set")
	}
	if c.VocabularyFile == "" || c.ParametersFile == "" {
		return errors.New("vocabulary_file and parameters_file must be set")
	}
	return nil
}

func (c *Config) validateInference() error {
	if c.PadLength < 1 {
		return fmt.Errorf("pad_length must be positive, got %d", c.PadLength)
	}
	if c.FallbackConfidence <= 0 || c.FallbackConfidence > 1 {
		return fmt.Errorf("fallback_confidence must be in (0,1], got %v", c.FallbackConfidence)
	}
	if c.BreakerFailures < 0 {
		return fmt.Errorf("breaker_failures must be >= 0, got %d", c.BreakerFailures)
	}
	if c.BreakerFailures > 0 && c.BreakerCooldownSeconds <= 0 {
		return fmt.Errorf("breaker_cooldown_seconds must be positive, got %d", c.BreakerCooldownSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	if len(c.LogOutput) == 0 {
		return errors.New("log_output must name at least one destination")
	}
	return nil
}
