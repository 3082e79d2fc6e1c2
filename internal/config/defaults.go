package config

const (
	defaultAddr                   = ":5000"
	defaultRateLimit              = 10
	defaultRateBurst              = 20
	defaultBodyLimit              = "64K"
	defaultShutdownTimeoutSeconds = 10
	defaultModelDir               = "model"
	defaultVocabularyFile         = "vocab.gob"
	defaultParametersFile         = "parameters.gob"
	defaultLexiconLanguage        = "english"
	defaultPadLength              = 100
	defaultFallbackConfidence     = 0.8
	defaultBreakerFailures        = 5
	defaultBreakerCooldownSeconds = 30
	defaultLogLevel               = "info"
	defaultLogFormat              = "text"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Addr:                   defaultAddr,
		CORSOrigins:            []string{"*"},
		RateLimit:              defaultRateLimit,
		RateBurst:              defaultRateBurst,
		BodyLimit:              defaultBodyLimit,
		ShutdownTimeoutSeconds: defaultShutdownTimeoutSeconds,
		ModelDir:               defaultModelDir,
		VocabularyFile:         defaultVocabularyFile,
		ParametersFile:         defaultParametersFile,
		LexiconLanguage:        defaultLexiconLanguage,
		PadLength:              defaultPadLength,
		FallbackConfidence:     defaultFallbackConfidence,
		BreakerFailures:        defaultBreakerFailures,
		BreakerCooldownSeconds: defaultBreakerCooldownSeconds,
		LogLevel:               defaultLogLevel,
		LogFormat:              defaultLogFormat,
		LogOutput:              []string{"stdout"},
	}
}
